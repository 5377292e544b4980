package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/lazyfeed/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View lazyfeed configuration",
	Long: `View lazyfeed configuration.

Without arguments, displays the current configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/lazyfeed/config.yaml.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// configFile mirrors config.Config with YAML tags for display.
type configFile struct {
	Scroller struct {
		Leeway      string `yaml:"leeway"`
		DebounceMs  int    `yaml:"debounce_ms"`
		UseDocument bool   `yaml:"use_document"`
		Element     string `yaml:"element,omitempty"`
		LateElement string `yaml:"late_element,omitempty"`
	} `yaml:"scroller"`
	Feed struct {
		Driver    string `yaml:"driver"`
		DSN       string `yaml:"dsn"`
		PageSize  int    `yaml:"page_size"`
		SeedItems int    `yaml:"seed_items"`
		LatencyMs int    `yaml:"latency_ms"`
		FailEvery int    `yaml:"fail_every"`
	} `yaml:"feed"`
	TUI struct {
		Theme    string `yaml:"theme"`
		ShowHelp bool   `yaml:"show_help"`
	} `yaml:"tui"`
	Logging struct {
		Enabled bool   `yaml:"enabled"`
		Level   string `yaml:"level"`
		Dir     string `yaml:"dir,omitempty"`
	} `yaml:"logging"`
}

func newConfigFile(cfg *config.Config) configFile {
	var f configFile
	f.Scroller.Leeway = cfg.Scroller.Leeway.String()
	f.Scroller.DebounceMs = cfg.Scroller.DebounceMs
	f.Scroller.UseDocument = cfg.Scroller.UseDocument
	f.Scroller.Element = cfg.Scroller.Element
	f.Scroller.LateElement = cfg.Scroller.LateElement
	f.Feed.Driver = cfg.Feed.Driver
	f.Feed.DSN = cfg.Feed.DSN
	f.Feed.PageSize = cfg.Feed.PageSize
	f.Feed.SeedItems = cfg.Feed.SeedItems
	f.Feed.LatencyMs = cfg.Feed.LatencyMs
	f.Feed.FailEvery = cfg.Feed.FailEvery
	f.TUI.Theme = cfg.TUI.Theme
	f.TUI.ShowHelp = cfg.TUI.ShowHelp
	f.Logging.Enabled = cfg.Logging.Enabled
	f.Logging.Level = cfg.Logging.Level
	f.Logging.Dir = cfg.Logging.Dir
	return f
}

func marshalConfig(cfg *config.Config) ([]byte, error) {
	return yaml.Marshal(newConfigFile(cfg))
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Show where config is being read from
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "# Config file: (none - using defaults)")
	}

	data, err := marshalConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := marshalConfig(config.Default())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	return nil
}
