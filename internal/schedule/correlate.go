package schedule

import "github.com/skreuzer/traintime/internal/gtfs"

// TrainSchedule pairs one trip's departure from the origin stop with its
// arrival at the destination stop. Both fields keep the raw service-day
// notation. Arrive stays empty when the trip never reaches the
// destination; such entries must be skipped downstream.
type TrainSchedule struct {
	TripID string
	Depart string
	Arrive string
}

// pairBuilder accumulates departure/arrival pairs per trip with an
// explicit merge rule: an origin visit creates (or overwrites) the trip's
// entry, a destination visit only updates an entry that already exists.
type pairBuilder struct {
	pairs map[string]*TrainSchedule
}

func newPairBuilder() *pairBuilder {
	return &pairBuilder{pairs: make(map[string]*TrainSchedule)}
}

func (b *pairBuilder) origin(tripID, departure string) {
	b.pairs[tripID] = &TrainSchedule{TripID: tripID, Depart: departure}
}

func (b *pairBuilder) destination(tripID, arrival string) {
	if pair, ok := b.pairs[tripID]; ok {
		pair.Arrive = arrival
	}
}

func (b *pairBuilder) result() map[string]TrainSchedule {
	out := make(map[string]TrainSchedule, len(b.pairs))
	for tripID, pair := range b.pairs {
		out[tripID] = *pair
	}
	return out
}

// CorrelatePairs scans the stop_times rows once and correlates, for every
// selected trip, the departure at the route's origin stop (which must be
// the trip's first stop) with the arrival at its destination stop. The
// feed is assumed to list each trip's visits in increasing stop_sequence
// order; a destination row seen before its origin row is lost.
func CorrelatePairs(selected map[string]struct{}, stopTimes []gtfs.StopTime, route Route) map[string]TrainSchedule {
	builder := newPairBuilder()
	for _, st := range stopTimes {
		if st.StopID == route.OriginStop && st.StopSequence == 0 {
			if _, ok := selected[st.TripID]; ok {
				builder.origin(st.TripID, st.DepartureTime)
			}
		}
		if st.StopID == route.DestStop {
			builder.destination(st.TripID, st.ArrivalTime)
		}
	}
	return builder.result()
}
