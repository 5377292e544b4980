package config

import (
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/lazyfeed/internal/scroll"
)

// Config represents the complete lazyfeed configuration
type Config struct {
	Scroller ScrollerConfig `mapstructure:"scroller"`
	Feed     FeedConfig     `mapstructure:"feed"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ScrollerConfig controls when the feed asks for more items
type ScrollerConfig struct {
	// Leeway is the percentage before the end of the content at which loading
	// starts. Accepts "50%", "50" or 50 (default: 0)
	Leeway scroll.Leeway `mapstructure:"leeway"`
	// DebounceMs is the quiet interval in milliseconds before a burst of
	// scrolling is evaluated (default: 250)
	DebounceMs int `mapstructure:"debounce_ms"`
	// UseDocument observes the whole screen instead of the feed pane
	UseDocument bool `mapstructure:"use_document"`
	// Element names a pane to observe explicitly
	Element string `mapstructure:"element"`
	// LateElement names a pane registered as the target after the first
	// layout. Ignored when Element or UseDocument is set.
	LateElement string `mapstructure:"late_element"`
}

// Debounce returns the debounce interval as a time.Duration
func (c ScrollerConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// ControllerConfig converts the settings into a scroll.Config
func (c ScrollerConfig) ControllerConfig() scroll.Config {
	return scroll.Config{
		Leeway:      c.Leeway,
		Debounce:    c.Debounce(),
		UseDocument: c.UseDocument,
		Element:     scroll.ElementID(c.Element),
	}
}

// FeedConfig controls the demo feed store and loader
type FeedConfig struct {
	// Driver is the database driver: "sqlite", "postgres" or "mysql"
	Driver string `mapstructure:"driver"`
	// DSN is the driver-specific data source name
	DSN string `mapstructure:"dsn"`
	// PageSize is the number of items fetched per load (default: 20)
	PageSize int `mapstructure:"page_size"`
	// SeedItems is how many items to generate when the store is empty (0 = none)
	SeedItems int `mapstructure:"seed_items"`
	// LatencyMs adds artificial latency to every page fetch (0 = disabled)
	LatencyMs int `mapstructure:"latency_ms"`
	// FailEvery makes every Nth fetch fail to exercise the error path (0 = disabled)
	FailEvery int `mapstructure:"fail_every"`
}

// Latency returns the artificial fetch latency as a time.Duration
func (c FeedConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMs) * time.Millisecond
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "mono"
	Theme string `mapstructure:"theme"`
	// ShowHelp shows the key binding help bar (default: true)
	ShowHelp bool `mapstructure:"show_help"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns on file logging (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for lazyfeed.log (default: <config dir>/logs)
	Dir string `mapstructure:"dir"`
}

// ResolveDir returns the log directory, falling back to <config dir>/logs
func (c LoggingConfig) ResolveDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Scroller: ScrollerConfig{
			Leeway:     0,
			DebounceMs: int(scroll.DefaultDebounce / time.Millisecond),
		},
		Feed: FeedConfig{
			Driver:    "sqlite",
			DSN:       "file:lazyfeed?mode=memory&cache=shared",
			PageSize:  20,
			SeedItems: 200,
		},
		TUI: TUIConfig{
			Theme:    "default",
			ShowHelp: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Scroller defaults
	viper.SetDefault("scroller.leeway", float64(defaults.Scroller.Leeway))
	viper.SetDefault("scroller.debounce_ms", defaults.Scroller.DebounceMs)
	viper.SetDefault("scroller.use_document", defaults.Scroller.UseDocument)
	viper.SetDefault("scroller.element", defaults.Scroller.Element)
	viper.SetDefault("scroller.late_element", defaults.Scroller.LateElement)

	// Feed defaults
	viper.SetDefault("feed.driver", defaults.Feed.Driver)
	viper.SetDefault("feed.dsn", defaults.Feed.DSN)
	viper.SetDefault("feed.page_size", defaults.Feed.PageSize)
	viper.SetDefault("feed.seed_items", defaults.Feed.SeedItems)
	viper.SetDefault("feed.latency_ms", defaults.Feed.LatencyMs)
	viper.SetDefault("feed.fail_every", defaults.Feed.FailEvery)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// LeewayHookFunc returns a decode hook that converts percentage strings and
// numbers into scroll.Leeway values.
func LeewayHookFunc() mapstructure.DecodeHookFuncType {
	leewayType := reflect.TypeOf(scroll.Leeway(0))
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != leewayType {
			return data, nil
		}
		return scroll.ParseLeeway(data)
	}
}

// DecodeHook is the decode hook used when unmarshaling configuration
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		LeewayHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(DecodeHook())); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lazyfeed")
	}
	// Fall back to ~/.config/lazyfeed
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lazyfeed"
	}
	return filepath.Join(home, ".config", "lazyfeed")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
