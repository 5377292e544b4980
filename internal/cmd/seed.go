package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lazyfeed/internal/config"
	"github.com/Iron-Ham/lazyfeed/internal/feed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert items into the feed store",
	Long: `Insert items into the configured feed store.

Without flags, feed.seed_items generated items are inserted. Use --count to
insert a different number, or --fixture to load items from a YAML file:

  items:
    - title: Hello
      body: First post
      author: ada`,
	RunE: runSeed,
}

var (
	seedCount   int
	seedFixture string
)

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 0, "number of generated items (default: feed.seed_items)")
	seedCmd.Flags().StringVarP(&seedFixture, "fixture", "f", "", "YAML fixture to load instead of generated items")
	seedCmd.MarkFlagsMutuallyExclusive("count", "fixture")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open feed store: %w", err)
	}
	defer store.Close()

	var inserted int
	switch {
	case seedFixture != "":
		items, err := feed.LoadFixture(seedFixture)
		if err != nil {
			return err
		}
		if err := store.SeedItems(ctx, items); err != nil {
			return err
		}
		inserted = len(items)
	default:
		n := seedCount
		if n <= 0 {
			n = cfg.Feed.SeedItems
		}
		if err := store.Seed(ctx, n); err != nil {
			return err
		}
		inserted = n
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d items (%d total)\n", inserted, total)
	return nil
}
