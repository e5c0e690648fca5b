package schedule

// Route pins down what one deployment resolves departures for: a single
// GTFS route and direction, plus the origin and destination stops of the
// station pair the operator cares about.
type Route struct {
	RouteID     int
	DirectionID int
	OriginStop  int
	DestStop    int
}
