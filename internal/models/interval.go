package models

import (
	"fmt"
	"sort"
)

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start SimTime `json:"start"`
	End   SimTime `json:"end"`
}

// Overlaps reports whether two half-open windows share at least one minute.
func (iv Interval) Overlaps(other Interval) bool {
	return !(iv.End.AbsoluteMinutes() <= other.Start.AbsoluteMinutes() ||
		other.End.AbsoluteMinutes() <= iv.Start.AbsoluteMinutes())
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start, iv.End)
}

// ReservationBook holds the windows already promised to appointment
// deliveries, kept sorted by start time. Overlap is rejected at insertion,
// so any two members are disjoint by construction.
type ReservationBook struct {
	intervals []Interval
}

func NewReservationBook() *ReservationBook {
	return &ReservationBook{}
}

// Conflicts reports whether the candidate window overlaps any reserved one.
func (b *ReservationBook) Conflicts(candidate Interval) bool {
	for _, iv := range b.intervals {
		if iv.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// Reserve inserts a window, keeping the book ordered. It fails if the
// window overlaps an existing reservation.
func (b *ReservationBook) Reserve(iv Interval) error {
	if b.Conflicts(iv) {
		return fmt.Errorf("window %s overlaps a reserved delivery window", iv)
	}
	pos := sort.Search(len(b.intervals), func(i int) bool {
		return b.intervals[i].Start.AbsoluteMinutes() >= iv.Start.AbsoluteMinutes()
	})
	b.intervals = append(b.intervals, Interval{})
	copy(b.intervals[pos+1:], b.intervals[pos:])
	b.intervals[pos] = iv
	return nil
}

// Release removes a previously reserved window. It reports whether the
// window was present.
func (b *ReservationBook) Release(iv Interval) bool {
	for i, existing := range b.intervals {
		if existing.Start.Equal(iv.Start) && existing.End.Equal(iv.End) {
			b.intervals = append(b.intervals[:i], b.intervals[i+1:]...)
			return true
		}
	}
	return false
}

func (b *ReservationBook) Len() int {
	return len(b.intervals)
}

// Intervals returns a copy of the reserved windows in start order.
func (b *ReservationBook) Intervals() []Interval {
	out := make([]Interval, len(b.intervals))
	copy(out, b.intervals)
	return out
}
