package calendar

import (
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/agenda"
)

type Day struct {
	Date  time.Time     `json:"date"`
	Items []agenda.Item `json:"tasks"`
}

// Bucket places dated items on the visible day they fall on, in the
// calendar's location, keeping the input order within a day. Items outside
// the range are dropped; undated items are only counted.
func (c *Calendar) Bucket(items []agenda.Item) ([]Day, int) {
	dates := c.VisibleDates()
	days := make([]Day, len(dates))
	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		days[i] = Day{Date: d, Items: []agenda.Item{}}
		index[d] = i
	}

	undated := 0
	loc := c.anchor.Location()
	for _, it := range items {
		due := it.DueDate()
		if due == nil {
			undated++
			continue
		}
		if i, ok := index[startOfDay(due.In(loc))]; ok {
			days[i].Items = append(days[i].Items, it)
		}
	}
	return days, undated
}
