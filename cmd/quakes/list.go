package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/couchcryptid/seismic-map-service/internal/adapter/scene"
	"github.com/couchcryptid/seismic-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/seismic-map-service/internal/config"
	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/couchcryptid/seismic-map-service/internal/feed"
	"github.com/couchcryptid/seismic-map-service/internal/observability"
	"github.com/couchcryptid/seismic-map-service/internal/view"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Load the feed once and print the event list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		feedURL, _ := cmd.Flags().GetString("feed-url")
		minMag, _ := cmd.Flags().GetFloat64("min-magnitude")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		locale, _ := cmd.Flags().GetString("locale")
		tz, _ := cmd.Flags().GetString("timezone")

		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", tz, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := cliLogger()
		metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())

		sc := scene.New(scene.TileLayer{})
		views := view.NewSynchronizer(sc.Map, sc.List, domain.NewFormatter(locale, loc), 0, logger, metrics)
		client := usgs.NewClient(feedURL, minMag, timeout, logger, metrics)
		loader := feed.New(client, views, nil, nil, domain.ParsePeriod(period), logger, metrics)

		res := loader.Load(ctx)

		out := cmd.OutOrStdout()
		if jsonOutput {
			if res.Err != nil {
				return res.Err
			}
			data, err := json.MarshalIndent(views.Records(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		printList(out, sc.List.State(), shouldUseColor())
		if res.Err != nil {
			return res.Err
		}
		if res.Skipped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d malformed feature(s) skipped\n", res.Skipped)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("feed-url", sharedcfg.EnvOrDefault("FEED_URL", config.DefaultFeedURL), "FDSN event query endpoint")
	listCmd.Flags().Float64("min-magnitude", config.DefaultMinMagnitude, "minimum magnitude to include")
	listCmd.Flags().Duration("timeout", 30*time.Second, "feed request timeout")
	listCmd.Flags().String("locale", sharedcfg.EnvOrDefault("DISPLAY_LOCALE", "en-US"), "number formatting locale")
	listCmd.Flags().String("timezone", sharedcfg.EnvOrDefault("DISPLAY_TIMEZONE", "UTC"), "display time zone")
}
