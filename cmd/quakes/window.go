package main

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Print the start date of the query window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := domain.ParsePeriod(period)
		start := domain.ResolveStart(p)

		if jsonOutput {
			data, err := json.Marshal(map[string]string{"period": string(p), "start": start})
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), start)
		return nil
	},
}
