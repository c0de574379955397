package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/behrlich/deck-sim/pkg/carddb"
	"github.com/behrlich/deck-sim/pkg/deckfile"
	"github.com/behrlich/deck-sim/pkg/metrics"
	"github.com/behrlich/deck-sim/pkg/registry"
	"github.com/behrlich/deck-sim/pkg/strategy"
	"github.com/behrlich/deck-sim/pkg/trial"
)

func newRunCmd() *cobra.Command {
	var (
		deckListPath    string
		annotationsPath string
		numTrials       int
		maxTurns        int
		refresh         bool
		seed            int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a deck and print aggregate metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runID := uuid.NewString()
			log.Info().Str("run_id", runID).Msg("starting run")

			list, err := deckfile.LoadDeckList(deckListPath)
			if err != nil {
				return err
			}
			log.Info().Int("cards", list.Count()).Msg("opened deck list")

			reg, err := loadRegistry(cmd, list.CardNames(), annotationsPath, refresh)
			if err != nil {
				return err
			}
			registry.Install(reg)

			deck, err := list.ToDeck(reg)
			if err != nil {
				return err
			}

			props := trial.Props{MaxTurn: maxTurns, NumTrials: numTrials}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			log.Info().Int("trials", props.NumTrials).Int("max_turn", props.MaxTurn).
				Int64("seed", seed).Msg("running trials")

			results, err := trial.RunTrials(cmd.Context(), reg, deck,
				strategy.NewGreedy(), metrics.ReferenceWatcher{}, props, seed)
			if err != nil {
				return err
			}

			reportMetrics(reg, results, runID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&deckListPath, "deck-list", "d", "", "path to the deck list JSON file")
	cmd.Flags().StringVar(&annotationsPath, "annotations", "", "path to the card annotations JSON file")
	cmd.Flags().IntVarP(&numTrials, "num-trials", "t", 10000, "number of independent trials to run")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 12, "number of turns to simulate per trial")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the local card cache")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	_ = cmd.MarkFlagRequired("deck-list")
	return cmd
}

// loadRegistry resolves card names through the cache/remote chain,
// writes the cache back, applies annotations, and publishes the result.
func loadRegistry(cmd *cobra.Command, names []string, annotationsPath string, refresh bool) (*registry.Registry, error) {
	cachePath, err := carddb.DefaultCachePath()
	if err != nil {
		return nil, err
	}
	cache := &carddb.Cache{Path: cachePath}
	remote := carddb.NewRemote(carddb.DefaultEndpoint)

	var source carddb.Source = carddb.NewChain(cache, remote)
	if refresh {
		log.Info().Msg("refresh requested, loading all card data from the remote database")
		source = carddb.NewChain(remote)
	}

	cards, err := source.Retrieve(cmd.Context(), names)
	if err != nil {
		return nil, err
	}
	log.Info().Int("cards", len(cards)).Msg("loaded card data")
	if err := cache.Save(cards); err != nil {
		log.Error().Err(err).Msg("unable to write card cache")
	}

	builder := registry.NewBuilder()
	carddb.Register(builder, cards)

	if annotationsPath != "" {
		annotations, err := deckfile.LoadAnnotations(annotationsPath)
		if err != nil {
			return nil, err
		}
		log.Info().Int("annotations", annotations.Len()).Msg("applying annotations")
		if err := annotations.Apply(builder); err != nil {
			return nil, err
		}
	}
	return builder.Build(), nil
}

func reportMetrics(reg *registry.Registry, results *metrics.Data, runID string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("run %s — %d trials", runID, results.TrialsSeen)
	t.AppendHeader(table.Row{"Metric", "Average", "Min", "Max", "Trials"})
	for _, key := range results.Keys() {
		m, _ := results.Get(key)
		t.AppendRow(table.Row{
			key.Describe(reg),
			results.Average(key),
			m.Min,
			m.Max,
			m.TrialsSeen,
		})
	}
	t.Render()
}
