package trial

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/behrlich/deck-sim/pkg/engine"
	"github.com/behrlich/deck-sim/pkg/metrics"
	"github.com/behrlich/deck-sim/pkg/registry"
	"github.com/behrlich/deck-sim/pkg/strategy"
)

// RunTrials fans props.NumTrials independent trials out across the
// machine's cores and reduces their metrics with Merge. Each worker gets
// its own deck copy, strategy clone, watcher clone, and an RNG seeded
// from the base seed plus the trial index, so a run is reproducible for
// a fixed seed regardless of how trials land on workers.
func RunTrials(ctx context.Context, reg *registry.Registry, deck engine.Deck, strat strategy.Strategy, watcher metrics.Watcher, props Props, seed int64) (*metrics.Data, error) {
	workers := runtime.GOMAXPROCS(0)
	if workers > props.NumTrials {
		workers = props.NumTrials
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]*metrics.Data, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		// Static partition: worker w owns trials [start, end).
		start := w * props.NumTrials / workers
		end := (w + 1) * props.NumTrials / workers
		g.Go(func() error {
			local := metrics.Empty()
			workerDeck := deck.Clone()
			workerStrat := strat.Clone()
			workerWatcher := watcher.Clone()
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				rng := rand.New(rand.NewSource(seed + int64(i)))
				t := New(reg, workerDeck, rng, props)
				local.Merge(t.Run(workerStrat, workerWatcher))
			}
			results[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := metrics.Empty()
	for _, local := range results {
		total.Merge(local)
	}
	return total, nil
}
