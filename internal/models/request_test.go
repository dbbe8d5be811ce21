package models

import "testing"

func TestMaxAllowedDuration(t *testing.T) {
	normal := NewRequest("n1", ClassNormal, NewSimTime(1, 0, 0), 30)
	express := NewRequest("e1", ClassExpress, NewSimTime(1, 0, 0), 30)
	target := NewSimTime(1, 3, 0)
	appt := NewAppointmentRequest("a1", NewSimTime(1, 0, 0), 30, target)

	if normal.MaxAllowedDuration() != MaxDuration || express.MaxAllowedDuration() != MaxDuration {
		t.Fatal("NORMAL and EXPRESS should cap at MaxDuration")
	}
	if appt.MaxAllowedDuration() != MaxAppointmentDuration {
		t.Fatal("APPOINTMENT should cap at MaxAppointmentDuration")
	}
}

func TestReservedWindow(t *testing.T) {
	target := NewSimTime(1, 3, 0)
	appt := NewAppointmentRequest("a1", NewSimTime(1, 0, 0), 60, target)

	win, ok := appt.ReservedWindow()
	if !ok {
		t.Fatal("appointment should have a reserved window")
	}
	if !win.Start.Equal(NewSimTime(1, 2, 0)) || !win.End.Equal(target) {
		t.Fatalf("ReservedWindow() = %s, want [1 02:00, 1 03:00)", win)
	}

	normal := NewRequest("n1", ClassNormal, NewSimTime(1, 0, 0), 60)
	if _, ok := normal.ReservedWindow(); ok {
		t.Fatal("non-appointment requests have no reserved window")
	}
}
