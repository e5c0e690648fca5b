package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skreuzer/traintime/internal/alerts"
	"github.com/skreuzer/traintime/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Args:  cobra.NoArgs,
	Short: "Pretty-print the raw LIRR service alerts payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAlertsClient()
		if err != nil {
			return err
		}
		payload, err := client.Status(cmd.Context(), cfg.AlertsURL)
		if err != nil {
			return err
		}
		fmt.Println(payload)
		return nil
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Args:  cobra.NoArgs,
	Short: "List decoded service alerts, one per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAlertsClient()
		if err != nil {
			return err
		}
		decoded, err := client.Feed(cmd.Context(), cfg.AlertsFeedURL)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 5, 3, 3, ' ', 0)
		fmt.Fprintln(w, "# id \t cause \t effect \t header")
		for i, alert := range decoded {
			fmt.Fprintf(w, "%d %s \t %s \t %s \t %s\n", i, alert.ID, alert.Cause, alert.Effect, alert.Header)
		}
		return w.Flush()
	},
}

func newAlertsClient() (*alerts.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.APIKey == "" {
		return nil, nil, errors.New("MTA_API_KEY is not set")
	}
	return alerts.NewClient(cfg.APIKey, cfg.HTTPTimeout), cfg, nil
}
