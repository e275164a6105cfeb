// Command quakes lists recent earthquakes from the USGS feed in the terminal.
package main

import (
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/couchcryptid/seismic-map-service/internal/config"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"
)

var (
	period     string
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "quakes <command>",
	Short:         "Query recent earthquakes from the USGS feed",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&period, "period", sharedcfg.EnvOrDefault("FEED_PERIOD", config.DefaultFeedPeriod), "time window: day, week or month")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log feed diagnostics to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(windowCmd)
}

// cliLogger writes to stderr so stdout stays clean for piping.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
