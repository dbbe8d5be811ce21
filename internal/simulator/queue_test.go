package simulator

import (
	"testing"

	"github.com/chrisdamba/deliverysim/internal/models"
)

func TestRequestQueueFIFOAndRemove(t *testing.T) {
	q := NewRequestQueue()
	at := models.NewSimTime(1, 0, 0)
	first := models.NewRequest("r1", models.ClassNormal, at, 10)
	second := models.NewRequest("r2", models.ClassNormal, at, 10)
	q.Add(first)
	q.Add(second)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if got := q.RemoveByID("r1"); got != first {
		t.Fatalf("RemoveByID returned %v, want r1", got)
	}
	if got := q.RemoveByID("r1"); got != nil {
		t.Fatalf("RemoveByID of a removed id returned %v", got)
	}
	if got := q.PopFirstFit(at, models.NewReservationBook()); got != second {
		t.Fatalf("PopFirstFit returned %v, want r2", got)
	}
}

func TestPopFirstFitSkipsReservedWindows(t *testing.T) {
	q := NewRequestQueue()
	now := models.NewSimTime(1, 1, 0)
	long := models.NewRequest("long", models.ClassExpress, now, 90) // would run into the window
	short := models.NewRequest("short", models.ClassExpress, now, 30)
	q.Add(long)
	q.Add(short)

	book := models.NewReservationBook()
	if err := book.Reserve(models.Interval{
		Start: models.NewSimTime(1, 2, 0),
		End:   models.NewSimTime(1, 3, 0),
	}); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	got := q.PopFirstFit(now, book)
	if got != short {
		t.Fatalf("PopFirstFit returned %v, want the conflict-free request", got)
	}
	if q.Len() != 1 {
		t.Fatalf("queue should still hold the blocked request, Len() = %d", q.Len())
	}
}

func TestPopExactTarget(t *testing.T) {
	q := NewRequestQueue()
	submitted := models.NewSimTime(1, 0, 0)
	target := models.NewSimTime(1, 2, 0)
	appt := models.NewAppointmentRequest("a1", submitted, 30, target)
	q.Add(appt)

	if got := q.PopExactTarget(models.NewSimTime(1, 1, 29)); got != nil {
		t.Fatalf("one minute early should not match, got %v", got)
	}
	if got := q.PopExactTarget(models.NewSimTime(1, 1, 31)); got != nil {
		t.Fatalf("one minute late should not match, got %v", got)
	}
	if got := q.PopExactTarget(models.NewSimTime(1, 1, 30)); got != appt {
		t.Fatalf("exact start minute should match, got %v", got)
	}
	if q.Len() != 0 {
		t.Fatalf("matched appointment should leave the queue, Len() = %d", q.Len())
	}
}
