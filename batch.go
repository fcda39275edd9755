package jos3

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// NewBatch builds one model per profile, at most limit at a time. A limit
// below 1 means no limit. The models are returned in profile order.
func NewBatch(ctx context.Context, profiles []Profile, limit int, opts ...Option) ([]*Model, error) {
	models := make([]*Model, len(profiles))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range profiles {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := New(p, opts...)
			if err != nil {
				return fmt.Errorf("profile %d: %w", i, err)
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

// SimulateBatch advances every model by times ticks, at most limit models
// at a time. Each model is driven by a single goroutine. The first error
// cancels the models that have not finished; they stop between ticks.
func SimulateBatch(ctx context.Context, models []*Model, times int, dtime float64, record bool, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, m := range models {
		i, m := i, m
		g.Go(func() error {
			if err := m.SimulateContext(ctx, times, dtime, record); err != nil {
				return fmt.Errorf("model %d (%s): %w", i, m.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
