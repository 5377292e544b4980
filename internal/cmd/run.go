package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/lazyfeed/internal/config"
	"github.com/Iron-Ham/lazyfeed/internal/event"
	"github.com/Iron-Ham/lazyfeed/internal/feed"
	"github.com/Iron-Ham/lazyfeed/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Browse the feed (the default command)",
	Args:  cobra.NoArgs,
	RunE:  runFeed,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Persistent so that "config show" reflects them too
	flags := rootCmd.PersistentFlags()
	flags.String("driver", "", "feed database driver (sqlite, postgres, mysql)")
	flags.String("dsn", "", "feed data source name")
	flags.String("leeway", "", `distance from the end that triggers a load, e.g. "25%"`)
	flags.Int("debounce", 0, "scroll debounce interval in milliseconds")
	flags.Bool("document", false, "observe the whole screen instead of the feed pane")
	flags.String("element", "", "observe the named pane")

	// Flags override config values only when set on the command line
	_ = viper.BindPFlag("feed.driver", flags.Lookup("driver"))
	_ = viper.BindPFlag("feed.dsn", flags.Lookup("dsn"))
	_ = viper.BindPFlag("scroller.leeway", flags.Lookup("leeway"))
	_ = viper.BindPFlag("scroller.debounce_ms", flags.Lookup("debounce"))
	_ = viper.BindPFlag("scroller.use_document", flags.Lookup("document"))
	_ = viper.BindPFlag("scroller.element", flags.Lookup("element"))
}

func runFeed(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("lazyfeed needs an interactive terminal")
	}

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

	if n, err := seedIfEmpty(ctx, store, cfg.Feed.SeedItems); err != nil {
		return fmt.Errorf("failed to seed feed store: %w", err)
	} else if n > 0 {
		logger.Info("seeded empty feed store", "items", n)
	}

	bus := event.NewBus(event.WithLogger(logger))
	loader := feed.NewLoader(store,
		feed.WithContext(ctx),
		feed.WithPageSize(cfg.Feed.PageSize),
		feed.WithLatency(cfg.Feed.Latency()),
		feed.WithFailEvery(cfg.Feed.FailEvery),
		feed.WithBus(bus),
		feed.WithLoaderLogger(logger),
	)

	logger.Info("starting lazyfeed",
		"driver", store.Driver(),
		"page_size", cfg.Feed.PageSize,
		"leeway", cfg.Scroller.Leeway.String(),
	)

	app := tui.New(cfg, loader, bus, logger)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
