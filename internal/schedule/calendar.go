package schedule

import "github.com/skreuzer/traintime/internal/gtfs"

// ActiveServices returns the set of service ids with a calendar exception
// dated today. today is an 8-digit YYYYMMDD string matching the feed's
// date column. Duplicate rows collapse into the set.
func ActiveServices(today string, rows []gtfs.CalendarDate) map[string]struct{} {
	active := make(map[string]struct{})
	for _, row := range rows {
		if row.Date == today {
			active[row.ServiceID] = struct{}{}
		}
	}
	return active
}

// SelectTrips returns the ids of trips running the route's line and
// direction under one of the active service ids.
func SelectTrips(active map[string]struct{}, trips []gtfs.Trip, route Route) map[string]struct{} {
	selected := make(map[string]struct{})
	for _, trip := range trips {
		if trip.RouteID != route.RouteID || trip.DirectionID != route.DirectionID {
			continue
		}
		if _, ok := active[trip.ServiceID]; ok {
			selected[trip.TripID] = struct{}{}
		}
	}
	return selected
}
