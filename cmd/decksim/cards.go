package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/behrlich/deck-sim/pkg/carddb"
)

func newCardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Inspect and maintain the local card cache",
	}
	cmd.AddCommand(newCardsFetchCmd())
	cmd.AddCommand(newCardsShowCmd())
	return cmd
}

func newCardsFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch NAME...",
		Short: "Fetch cards from the remote database into the cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, names []string) error {
			cachePath, err := carddb.DefaultCachePath()
			if err != nil {
				return err
			}
			cache := &carddb.Cache{Path: cachePath}
			remote := carddb.NewRemote(carddb.DefaultEndpoint)

			fetched, err := remote.Retrieve(cmd.Context(), names)
			if err != nil {
				return err
			}

			// Merge with what the cache already has; fresh records win.
			existing := cache.Load()
			byName := make(map[string]carddb.Card, len(existing)+len(fetched))
			for _, c := range existing {
				byName[c.Name] = c
			}
			for _, c := range fetched {
				byName[c.Name] = c
			}
			merged := make([]carddb.Card, 0, len(byName))
			for _, c := range byName {
				merged = append(merged, c)
			}
			if err := cache.Save(merged); err != nil {
				return err
			}
			log.Info().Int("fetched", len(fetched)).Str("cache", cachePath).
				Msg("cache updated")
			return nil
		},
	}
}

func newCardsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME...",
		Short: "Show cached records for the named cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, names []string) error {
			cachePath, err := carddb.DefaultCachePath()
			if err != nil {
				return err
			}
			cache := &carddb.Cache{Path: cachePath}

			cards, err := cache.Retrieve(cmd.Context(), names)
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				return fmt.Errorf("none of the requested cards are cached; try `decksim cards fetch` first")
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Type", "Cost"})
			for _, c := range cards {
				cost := ""
				if c.Cost != nil {
					cost = c.Cost.String()
				}
				t.AppendRow(table.Row{c.Name, c.Type, cost})
			}
			t.Render()
			return nil
		},
	}
}
