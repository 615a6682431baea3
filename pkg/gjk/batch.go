package gjk

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Pair is one query of a batch.
type Pair[V any] struct {
	A, B Support[V]
}

// IntersectBatch answers every pair, running independent queries on
// separate goroutines when the routine is reentrant. The first failing pair
// stops scheduling the rest. Cancelling ctx does the same; a foreign call
// already in flight always runs to completion.
func (d *Detector[V]) IntersectBatch(ctx context.Context, pairs []Pair[V]) ([]bool, error) {
	out := make([]bool, len(pairs))
	limit := d.parallel
	if !isReentrant(d.routine) {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hit, err := d.Intersect(p.A, p.B)
			if err != nil {
				return errors.Wrapf(err, "pair %d", i)
			}
			out[i] = hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
