package client

import (
	"context"
	"errors"
	"net/url"

	"github.com/justsurfingit/job-search-tracker/internal/agenda"
)

var (
	ErrUnknownItem      = errors.New("item is not in the list")
	ErrNextStepDeletion = errors.New("next steps are completed, not deleted")
)

// TaskList is the to-do view: persisted tasks and application next steps in
// agenda order.
type TaskList struct {
	client *Client
	cache  *Cache[agenda.View]
	Query  url.Values
}

func NewTaskList(c *Client) *TaskList {
	return &TaskList{
		client: c,
		cache:  NewCache(func(v agenda.View) string { return v.ID }),
	}
}

func (l *TaskList) Load(ctx context.Context) error {
	items, err := l.client.ListTasks(ctx, l.Query)
	if err != nil {
		return err
	}
	l.cache.Replace(items)
	return nil
}

func (l *TaskList) Items() []agenda.View {
	return l.cache.Items()
}

func (l *TaskList) reload(ctx context.Context) error {
	l.cache.Reset()
	return l.Load(ctx)
}

func (l *TaskList) Create(ctx context.Context, fields map[string]any) (*agenda.View, error) {
	item, err := l.client.CreateTask(ctx, fields)
	if err != nil {
		return nil, err
	}
	l.cache.Prepend(*item)
	return item, nil
}

// SetCompleted toggles an item. Completing a next step clears it on its
// application instead, and the item leaves the list. Next steps cannot be
// reopened.
func (l *TaskList) SetCompleted(ctx context.Context, id string, completed bool) error {
	item, ok := l.cache.Get(id)
	if !ok {
		return ErrUnknownItem
	}

	if item.Type == agenda.TypeNextStep {
		if !completed {
			return nil
		}
		appID, _ := agenda.IsNextStepID(id)
		return Mutate(ctx,
			func() { l.cache.Remove(id) },
			func(ctx context.Context) error {
				_, err := l.client.UpdateApplication(ctx, appID, map[string]any{"nextStep": nil, "nextStepDate": nil})
				return err
			},
			l.reload,
		)
	}

	return Mutate(ctx,
		func() { l.cache.Update(id, func(v *agenda.View) { v.Completed = completed }) },
		func(ctx context.Context) error {
			updated, err := l.client.UpdateTask(ctx, id, map[string]any{"completed": completed})
			if err != nil {
				return err
			}
			l.cache.Put(*updated)
			return nil
		},
		l.reload,
	)
}

// Delete removes a persisted task. Next steps are refused with
// ErrNextStepDeletion; complete them instead.
func (l *TaskList) Delete(ctx context.Context, id string) error {
	item, ok := l.cache.Get(id)
	if !ok {
		return ErrUnknownItem
	}
	if item.Type == agenda.TypeNextStep {
		return ErrNextStepDeletion
	}

	return Mutate(ctx,
		func() { l.cache.Remove(id) },
		func(ctx context.Context) error { return l.client.DeleteTask(ctx, id) },
		l.reload,
	)
}
