package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/skreuzer/traintime/internal/gtfs"
)

var (
	// ErrNoService is returned when calendar_dates carries no entry for
	// the requested date. An empty calendar means a stale or malformed
	// feed, not a day without trains, so it is surfaced instead of being
	// treated as an empty result.
	ErrNoService = errors.New("no service ids found")

	// ErrDataIntegrity flags a correlated pair whose arrival precedes its
	// departure after normalization.
	ErrDataIntegrity = errors.New("schedule data integrity fault")
)

// Departure is one upcoming train, ready for display.
type Departure struct {
	TripID     string
	Departs    time.Time
	Arrives    time.Time
	TravelTime time.Duration
}

// Line renders the departure in the traintime output format, for example
// "07:12 -> 08:31 (01 hour 19 minutes)" or "08:00 -> 08:45 (45 minutes)".
// The hour clause is omitted for trips under one hour.
func (d Departure) Line() string {
	hours := int(d.TravelTime / time.Hour)
	minutes := int(d.TravelTime % time.Hour / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%s -> %s (%02d hour %02d minutes)",
			d.Departs.Format("15:04"), d.Arrives.Format("15:04"), hours, minutes)
	}
	return fmt.Sprintf("%s -> %s (%02d minutes)",
		d.Departs.Format("15:04"), d.Arrives.Format("15:04"), minutes)
}

// Resolver computes upcoming departures for a fixed route from a parsed
// feed. It holds no state across runs; every Resolve call works from the
// feed snapshot it is handed.
type Resolver struct {
	Route Route
}

// Resolve runs the full pipeline: active services for the service day,
// trip selection, stop pair correlation, midnight normalization, and
// filtering against now. day anchors the service date, now filters out
// departures already gone; both are injected so resolution stays
// deterministic under test. The returned departures are sorted
// chronologically, trip id breaking ties.
func (r Resolver) Resolve(feed *gtfs.Feed, day, now time.Time) ([]Departure, error) {
	today := day.Format("20060102")
	active := ActiveServices(today, feed.CalendarDates)
	if len(active) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoService, today)
	}

	selected := SelectTrips(active, feed.Trips, r.Route)
	pairs := CorrelatePairs(selected, feed.StopTimes, r.Route)

	departures := make([]Departure, 0, len(pairs))
	for tripID, pair := range pairs {
		if pair.Arrive == "" {
			// The trip never reaches the destination stop.
			continue
		}

		departure, err := anchor(day, pair.Depart)
		if err != nil {
			return nil, fmt.Errorf("trip %s departure: %w", tripID, err)
		}
		arrival, err := anchor(day, pair.Arrive)
		if err != nil {
			return nil, fmt.Errorf("trip %s arrival: %w", tripID, err)
		}

		travel := arrival.Sub(departure)
		if travel < 0 {
			return nil, fmt.Errorf("%w: trip %s arrives %s before departing %s",
				ErrDataIntegrity, tripID, arrival.Format("15:04:05"), departure.Format("15:04:05"))
		}
		if !departure.After(now) {
			continue
		}

		departures = append(departures, Departure{
			TripID:     tripID,
			Departs:    departure,
			Arrives:    arrival,
			TravelTime: travel,
		})
	}

	sort.Slice(departures, func(i, j int) bool {
		if departures[i].Departs.Equal(departures[j].Departs) {
			return departures[i].TripID < departures[j].TripID
		}
		return departures[i].Departs.Before(departures[j].Departs)
	})
	return departures, nil
}

// anchor normalizes a raw service-day time and binds it to the service
// date, rolling past-midnight times onto the next calendar day.
func anchor(day time.Time, value string) (time.Time, error) {
	normalized, dayOffset, err := Normalize(value)
	if err != nil {
		return time.Time{}, err
	}
	return combine(day, normalized, dayOffset)
}
