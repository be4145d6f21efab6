package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "takeoutsort",
	Short: "Organize Google Photos Takeout exports by date",
	Long: `takeoutsort - organize Google Photos Takeout exports by date

Reads a Takeout zip (or an extracted Takeout directory) and copies every
photo into <output>/YYYY/YYYY-MM-DD/. Photos that are organized elsewhere
(DSLR shots, Lightroom exports, Google "-MIX" creations, edited copies whose
original is in the same export) are skipped unless --no-filter is given.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("takeoutsort {{.Version}}\n")
}
