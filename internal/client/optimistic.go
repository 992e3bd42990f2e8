package client

import (
	"context"
	"errors"
)

// Mutate applies a local change first, then commits it to the server. When the
// commit fails the local state is thrown away by reconcile, which re-pulls it
// from the server. The commit error is always returned; there is no retry.
func Mutate(ctx context.Context, apply func(), commit, reconcile func(context.Context) error) error {
	if apply != nil {
		apply()
	}
	err := commit(ctx)
	if err == nil {
		return nil
	}
	if reconcile != nil {
		if rerr := reconcile(ctx); rerr != nil {
			return errors.Join(err, rerr)
		}
	}
	return err
}
