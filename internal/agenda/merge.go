package agenda

import (
	"slices"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/models"
)

// Less orders incomplete items first, then dated before undated, then by
// due date ascending. Two undated items fall back to newest first.
func Less(a, b Item) bool {
	return compare(a, b) < 0
}

func compare(a, b Item) int {
	if a.Completed() != b.Completed() {
		if a.Completed() {
			return 1
		}
		return -1
	}

	ad, bd := a.DueDate(), b.DueDate()
	switch {
	case ad != nil && bd != nil:
		return ad.Compare(*bd)
	case ad != nil:
		return -1
	case bd != nil:
		return 1
	}
	return b.CreatedAt().Compare(a.CreatedAt())
}

// Sort orders items in place; ties keep their input order.
func Sort(items []Item) {
	slices.SortStableFunc(items, compare)
}

// Tasks wraps persisted tasks as items.
func Tasks(tasks []models.Task) []Item {
	items := make([]Item, len(tasks))
	for i := range tasks {
		items[i] = FromTask(&tasks[i])
	}
	return items
}

// NextSteps derives an item for every application with an open next step.
func NextSteps(apps []models.Application, now time.Time) []Item {
	var items []Item
	for i := range apps {
		if apps[i].HasOpenNextStep() {
			items = append(items, FromNextStep(&apps[i], now))
		}
	}
	return items
}

// Merge concatenates the lists and sorts the result.
func Merge(lists ...[]Item) []Item {
	var out []Item
	for _, l := range lists {
		out = append(out, l...)
	}
	Sort(out)
	return out
}
