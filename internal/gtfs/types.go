package gtfs

// CalendarDate represents a service exception from calendar_dates.txt
type CalendarDate struct {
	ServiceID     string
	Date          string // local calendar date, YYYYMMDD
	ExceptionType int
}

// Stop represents a stop from stops.txt
type Stop struct {
	StopID   int
	StopName string
}

// Trip represents a trip from trips.txt
type Trip struct {
	RouteID     int
	ServiceID   string
	TripID      string
	DirectionID int
}

// StopTime represents a stop time from stop_times.txt. Arrival and
// departure keep the raw GTFS service-day notation, where the hour may
// exceed 23 for visits past midnight.
type StopTime struct {
	TripID        string
	ArrivalTime   string
	DepartureTime string
	StopID        int
	StopSequence  int
}

// Feed holds the four parsed tables consumed by one resolution run
type Feed struct {
	CalendarDates []CalendarDate
	Stops         []Stop
	Trips         []Trip
	StopTimes     []StopTime
}

// StopName returns the display name for a stop id.
func (f *Feed) StopName(id int) (string, bool) {
	for _, stop := range f.Stops {
		if stop.StopID == id {
			return stop.StopName, true
		}
	}
	return "", false
}
