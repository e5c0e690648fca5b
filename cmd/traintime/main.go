package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skreuzer/traintime/internal/config"
	"github.com/skreuzer/traintime/internal/gtfs"
	"github.com/skreuzer/traintime/internal/schedule"
)

var rootCmd = &cobra.Command{
	Use:          "traintime",
	Short:        "Next train",
	Long:         "Lists upcoming departures between two fixed stations from a local GTFS feed.",
	Args:         cobra.NoArgs,
	RunE:         nextTrains,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(versionCmd)
}

func nextTrains(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	feed, err := gtfs.ReadDir(cfg.GTFSDir)
	if err != nil {
		return err
	}

	route := schedule.Route{
		RouteID:     cfg.RouteID,
		DirectionID: cfg.DirectionID,
		OriginStop:  cfg.OriginStopID,
		DestStop:    cfg.DestinationStopID,
	}
	if _, ok := feed.StopName(route.OriginStop); !ok {
		return fmt.Errorf("origin stop %d not present in %s", route.OriginStop, gtfs.StopsFile)
	}
	if _, ok := feed.StopName(route.DestStop); !ok {
		return fmt.Errorf("destination stop %d not present in %s", route.DestStop, gtfs.StopsFile)
	}

	now := time.Now().In(cfg.Location)
	departures, err := schedule.Resolver{Route: route}.Resolve(feed, now, now)
	if err != nil {
		if errors.Is(err, schedule.ErrNoService) {
			fmt.Fprintf(os.Stderr, "%s.\n", err)
			os.Exit(1)
		}
		return err
	}

	for _, departure := range departures {
		fmt.Println(departure.Line())
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
