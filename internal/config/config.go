package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the traintime CLI
type Config struct {
	// Feed location
	GTFSDir string

	// Route selection
	RouteID           int
	DirectionID       int
	OriginStopID      int
	DestinationStopID int

	// MTA alerts API
	APIKey        string
	AlertsURL     string
	AlertsFeedURL string
	HTTPTimeout   time.Duration

	// Local time zone anchoring the service day
	Location *time.Location
}

// Load reads configuration from .env and environment variables. The route
// defaults describe the eastbound LIRR Hempstead branch pair this tool was
// originally written for; point them elsewhere to reuse the resolver for
// another route or station pair.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		GTFSDir: getEnv("GTFS_DIR", filepath.Join(os.Getenv("HOME"), "google_transit")),

		RouteID:           getEnvInt("ROUTE_ID", 2),
		DirectionID:       getEnvInt("DIRECTION_ID", 0),
		OriginStopID:      getEnvInt("ORIGIN_STOP_ID", 8),
		DestinationStopID: getEnvInt("DESTINATION_STOP_ID", 38),

		APIKey:        os.Getenv("MTA_API_KEY"),
		AlertsURL:     getEnv("MTA_ALERTS_URL", "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/camsys%2Flirr-alerts.json"),
		AlertsFeedURL: getEnv("MTA_ALERTS_FEED_URL", "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/camsys%2Flirr-alerts"),
		HTTPTimeout:   time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}

	if tz := os.Getenv("TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ: %w", err)
		}
		cfg.Location = loc
	} else {
		cfg.Location = time.Local
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
