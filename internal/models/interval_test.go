package models

import "testing"

func window(startH, startM, endH, endM int) Interval {
	return Interval{Start: NewSimTime(1, startH, startM), End: NewSimTime(1, endH, endM)}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint", a: window(2, 0, 3, 0), b: window(4, 0, 5, 0), want: false},
		{name: "touching ends", a: window(2, 0, 3, 0), b: window(3, 0, 4, 0), want: false},
		{name: "touching starts", a: window(3, 0, 4, 0), b: window(2, 0, 3, 0), want: false},
		{name: "one minute shared", a: window(2, 0, 3, 0), b: window(2, 59, 4, 0), want: true},
		{name: "contained", a: window(2, 0, 5, 0), b: window(3, 0, 4, 0), want: true},
		{name: "identical", a: window(2, 0, 3, 0), b: window(2, 0, 3, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("%s.Overlaps(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("overlap is not symmetric for %s and %s", tt.a, tt.b)
			}
		})
	}
}

func TestReservationBookRejectsOverlap(t *testing.T) {
	book := NewReservationBook()
	if err := book.Reserve(window(2, 0, 3, 0)); err != nil {
		t.Fatalf("first Reserve failed: %v", err)
	}
	if err := book.Reserve(window(2, 30, 3, 30)); err == nil {
		t.Fatal("overlapping Reserve should fail")
	}
	if book.Len() != 1 {
		t.Fatalf("Len() = %d after rejected insert, want 1", book.Len())
	}
	if err := book.Reserve(window(3, 0, 4, 0)); err != nil {
		t.Fatalf("adjacent Reserve failed: %v", err)
	}
}

func TestReservationBookKeepsOrder(t *testing.T) {
	book := NewReservationBook()
	for _, iv := range []Interval{window(6, 0, 7, 0), window(2, 0, 3, 0), window(4, 0, 5, 0)} {
		if err := book.Reserve(iv); err != nil {
			t.Fatalf("Reserve(%s) failed: %v", iv, err)
		}
	}

	got := book.Intervals()
	for i := 1; i < len(got); i++ {
		if !got[i-1].Start.Before(got[i].Start) {
			t.Fatalf("intervals out of order: %v", got)
		}
	}
}

func TestReservationBookRelease(t *testing.T) {
	book := NewReservationBook()
	iv := window(2, 0, 3, 0)
	if err := book.Reserve(iv); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	if !book.Release(iv) {
		t.Fatal("Release of a reserved window should succeed")
	}
	if book.Release(iv) {
		t.Fatal("second Release should report absence")
	}
	if book.Conflicts(iv) {
		t.Fatal("released window should no longer conflict")
	}
}
