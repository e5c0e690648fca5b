package gtfs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// File names within a GTFS feed directory.
const (
	CalendarDatesFile = "calendar_dates.txt"
	StopsFile         = "stops.txt"
	TripsFile         = "trips.txt"
	StopTimesFile     = "stop_times.txt"
)

// ReadDir parses the four feed files traintime consumes from dir. Each
// file is opened, fully read and closed before the next one. A malformed
// row aborts the whole read: a feed that cannot be parsed cannot be
// trusted for a transit-time answer.
func ReadDir(dir string) (*Feed, error) {
	feed := &Feed{}
	var err error

	if feed.CalendarDates, err = ParseCalendarDates(filepath.Join(dir, CalendarDatesFile)); err != nil {
		return nil, err
	}
	if feed.Stops, err = ParseStops(filepath.Join(dir, StopsFile)); err != nil {
		return nil, err
	}
	if feed.Trips, err = ParseTrips(filepath.Join(dir, TripsFile)); err != nil {
		return nil, err
	}
	if feed.StopTimes, err = ParseStopTimes(filepath.Join(dir, StopTimesFile)); err != nil {
		return nil, err
	}
	return feed, nil
}

// ParseCalendarDates parses calendar_dates.txt: service_id, date, exception_type.
func ParseCalendarDates(path string) ([]CalendarDate, error) {
	var rows []CalendarDate
	err := parseFile(path, 3, func(record []string) error {
		exceptionType, err := strconv.Atoi(record[2])
		if err != nil {
			return fmt.Errorf("exception_type %q: %w", record[2], err)
		}
		rows = append(rows, CalendarDate{
			ServiceID:     record[0],
			Date:          record[1],
			ExceptionType: exceptionType,
		})
		return nil
	})
	return rows, err
}

// ParseStops parses stops.txt. Only the leading stop_id and stop_name
// columns are consumed.
func ParseStops(path string) ([]Stop, error) {
	var rows []Stop
	err := parseFile(path, 2, func(record []string) error {
		stopID, err := strconv.Atoi(record[0])
		if err != nil {
			return fmt.Errorf("stop_id %q: %w", record[0], err)
		}
		rows = append(rows, Stop{StopID: stopID, StopName: record[1]})
		return nil
	})
	return rows, err
}

// ParseTrips parses trips.txt: route_id, service_id, trip_id at the first
// three positions and direction_id at position five. Trailing columns are
// ignored.
func ParseTrips(path string) ([]Trip, error) {
	var rows []Trip
	err := parseFile(path, 6, func(record []string) error {
		routeID, err := strconv.Atoi(record[0])
		if err != nil {
			return fmt.Errorf("route_id %q: %w", record[0], err)
		}
		directionID, err := strconv.Atoi(record[5])
		if err != nil {
			return fmt.Errorf("direction_id %q: %w", record[5], err)
		}
		rows = append(rows, Trip{
			RouteID:     routeID,
			ServiceID:   record[1],
			TripID:      record[2],
			DirectionID: directionID,
		})
		return nil
	})
	return rows, err
}

// ParseStopTimes parses stop_times.txt: trip_id, arrival_time,
// departure_time, stop_id, stop_sequence. Times keep their raw service-day
// form; normalization happens during resolution.
func ParseStopTimes(path string) ([]StopTime, error) {
	var rows []StopTime
	err := parseFile(path, 5, func(record []string) error {
		stopID, err := strconv.Atoi(record[3])
		if err != nil {
			return fmt.Errorf("stop_id %q: %w", record[3], err)
		}
		stopSequence, err := strconv.Atoi(record[4])
		if err != nil {
			return fmt.Errorf("stop_sequence %q: %w", record[4], err)
		}
		rows = append(rows, StopTime{
			TripID:        record[0],
			ArrivalTime:   record[1],
			DepartureTime: record[2],
			StopID:        stopID,
			StopSequence:  stopSequence,
		})
		return nil
	})
	return rows, err
}

// parseFile streams the comma-separated records of one feed file past fn,
// skipping the header row. Records shorter than minFields, and any error
// returned by fn, fail the parse with the file and line attached.
func parseFile(path string, minFields int, fn func(record []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Base(path)
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("%s: reading header: %w", name, err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		line++
		if len(record) < minFields {
			return fmt.Errorf("%s line %d: expected at least %d columns, got %d", name, line, minFields, len(record))
		}
		if err := fn(record); err != nil {
			return fmt.Errorf("%s line %d: %w", name, line, err)
		}
	}
	return nil
}
