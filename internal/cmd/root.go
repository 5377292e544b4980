package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/lazyfeed/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "lazyfeed",
	Short: "Infinite-scroll feed browser for the terminal",
	Long: `lazyfeed pages items out of a database as you scroll.

When the visible pane nears the end of its content, the next page is
fetched in the background. Scroll events are debounced so a burst of
key presses triggers a single evaluation.`,
	RunE: runFeed,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/lazyfeed/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	// LAZYFEED_FEED_DRIVER overrides feed.driver, and so on
	viper.SetEnvPrefix("LAZYFEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults apply
	_ = viper.ReadInConfig()
}
