package client

import (
	"context"

	"github.com/justsurfingit/job-search-tracker/internal/models"
)

// Position is where a card sits on the board.
type Position struct {
	Status models.ApplicationStatus
	Index  int
}

// Board is the Kanban view of applications, one column per status.
type Board struct {
	client *Client
	cache  *Cache[models.Application]
}

func NewBoard(c *Client) *Board {
	return &Board{
		client: c,
		cache:  NewCache(func(a models.Application) string { return a.ID }),
	}
}

func (b *Board) Load(ctx context.Context) error {
	apps, err := b.client.ListApplications(ctx)
	if err != nil {
		return err
	}
	b.cache.Replace(apps)
	return nil
}

func (b *Board) Applications() []models.Application {
	return b.cache.Items()
}

func (b *Board) Column(status models.ApplicationStatus) []models.Application {
	var out []models.Application
	for _, a := range b.cache.Items() {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// Move drops card id at to. The status changes locally right away; if the
// server rejects it, the board is refetched and the error returned.
func (b *Board) Move(ctx context.Context, id string, from, to Position) error {
	if from == to {
		return nil
	}

	return Mutate(ctx,
		func() {
			b.cache.Update(id, func(a *models.Application) { a.Status = to.Status })
		},
		func(ctx context.Context) error {
			_, err := b.client.UpdateApplication(ctx, id, map[string]any{"status": to.Status})
			return err
		},
		func(ctx context.Context) error {
			b.cache.Reset()
			return b.Load(ctx)
		},
	)
}
