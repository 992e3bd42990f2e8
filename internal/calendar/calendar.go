// Package calendar holds the navigation state of the task calendar: which
// dates are visible, how prev/next move, and the header label.
package calendar

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

var mondayWeeks = &now.Config{WeekStartDay: time.Monday}

type View string

const (
	ViewDay      View = "day"
	ViewThreeDay View = "3day"
	ViewWeek     View = "week"
	ViewMonth    View = "month"
)

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewDay, ViewThreeDay, ViewWeek, ViewMonth:
		return v, nil
	case "":
		return ViewMonth, nil
	}
	return "", fmt.Errorf("invalid calendar view %q", s)
}

type Direction int

const (
	Prev Direction = iota
	Next
	Today
)

// Calendar is an anchor date plus a view. Weeks start on Monday.
type Calendar struct {
	anchor time.Time
	view   View
	now    func() time.Time
}

// New returns a calendar anchored at anchor. A nil now uses time.Now.
func New(anchor time.Time, view View, clock func() time.Time) *Calendar {
	if clock == nil {
		clock = time.Now
	}
	if view == "" {
		view = ViewMonth
	}
	return &Calendar{anchor: anchor, view: view, now: clock}
}

func (c *Calendar) Anchor() time.Time { return c.anchor }

func (c *Calendar) View() View { return c.view }

// SetView switches the view and keeps the anchor.
func (c *Calendar) SetView(v View) { c.view = v }

func (c *Calendar) GoTo(t time.Time) { c.anchor = t }

func (c *Calendar) Navigate(dir Direction) {
	if dir == Today {
		c.anchor = c.now()
		return
	}
	n := 1
	if dir == Prev {
		n = -1
	}
	switch c.view {
	case ViewMonth:
		c.anchor = addMonths(c.anchor, n)
	case ViewWeek:
		c.anchor = c.anchor.AddDate(0, 0, 7*n)
	case ViewThreeDay:
		c.anchor = c.anchor.AddDate(0, 0, 3*n)
	case ViewDay:
		c.anchor = c.anchor.AddDate(0, 0, n)
	}
}

// VisibleDates returns the midnights of every day the view shows.
func (c *Calendar) VisibleDates() []time.Time {
	day := startOfDay(c.anchor)
	switch c.view {
	case ViewMonth:
		month := mondayWeeks.With(day)
		return eachDay(startOfWeek(month.BeginningOfMonth()), endOfWeek(month.EndOfMonth()))
	case ViewWeek:
		return eachDay(startOfWeek(day), endOfWeek(day))
	case ViewThreeDay:
		return eachDay(day, day.AddDate(0, 0, 2))
	case ViewDay:
		return []time.Time{day}
	}
	return nil
}

// Range returns the first and last visible day.
func (c *Calendar) Range() (time.Time, time.Time) {
	dates := c.VisibleDates()
	if len(dates) == 0 {
		return c.anchor, c.anchor
	}
	return dates[0], dates[len(dates)-1]
}

func (c *Calendar) HeaderLabel() string {
	switch c.view {
	case ViewMonth:
		return c.anchor.Format("January 2006")
	case ViewWeek, ViewThreeDay:
		start, end := c.Range()
		if start.Year() == end.Year() && start.Month() == end.Month() {
			return start.Format("Jan 2") + " - " + end.Format("2, 2006")
		}
		return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	case ViewDay:
		return c.anchor.Format("Monday, January 2, 2006")
	}
	return ""
}

func startOfDay(t time.Time) time.Time {
	return mondayWeeks.With(t).BeginningOfDay()
}

func startOfWeek(t time.Time) time.Time {
	return mondayWeeks.With(t).BeginningOfWeek()
}

// endOfWeek is the last instant of Sunday.
func endOfWeek(t time.Time) time.Time {
	return mondayWeeks.With(t).EndOfWeek()
}

func eachDay(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// addMonths moves n months, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	target := mondayWeeks.With(mondayWeeks.With(t).BeginningOfMonth().AddDate(0, n, 0))
	day := min(t.Day(), target.EndOfMonth().Day())
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
