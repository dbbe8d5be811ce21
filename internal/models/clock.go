package models

import "fmt"

const minutesPerDay = 24 * 60

// SimTime is a point on the simulated calendar. Day counting starts at 1,
// so day 1 00:00 is minute zero of the whole run.
type SimTime struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func NewSimTime(day, hour, minute int) SimTime {
	return SimTime{Day: day, Hour: hour, Minute: minute}
}

// SimTimeFromMinutes converts an absolute minute count back into a calendar value.
func SimTimeFromMinutes(abs int) SimTime {
	return SimTime{
		Day:    abs/minutesPerDay + 1,
		Hour:   (abs % minutesPerDay) / 60,
		Minute: abs % 60,
	}
}

// AbsoluteMinutes returns the number of minutes elapsed since day 1 00:00.
func (t SimTime) AbsoluteMinutes() int {
	return (t.Day-1)*minutesPerDay + t.Hour*60 + t.Minute
}

// Step advances the clock by exactly one minute, carrying into hour and day.
// It is the canonical mutation used by the tick loop.
func (t *SimTime) Step() {
	t.Minute++
	if t.Minute == 60 {
		t.Minute = 0
		t.Hour++
	}
	if t.Hour == 24 {
		t.Hour = 0
		t.Day++
	}
}

// Add returns a new SimTime the given number of minutes ahead (or behind,
// for negative values). Unlike Step it works directly on the absolute
// minute representation, so cost does not grow with the offset.
func (t SimTime) Add(minutes int) SimTime {
	return SimTimeFromMinutes(t.AbsoluteMinutes() + minutes)
}

func (t SimTime) Before(other SimTime) bool {
	return t.AbsoluteMinutes() < other.AbsoluteMinutes()
}

func (t SimTime) After(other SimTime) bool {
	return t.AbsoluteMinutes() > other.AbsoluteMinutes()
}

func (t SimTime) Equal(other SimTime) bool {
	return t.AbsoluteMinutes() == other.AbsoluteMinutes()
}

// String renders the time the way input and output lines carry it, e.g. "1 08:05".
func (t SimTime) String() string {
	return fmt.Sprintf("%d %02d:%02d", t.Day, t.Hour, t.Minute)
}

// ParseSimTime builds a SimTime from the textual "day" and "hh:mm" fields
// of a command line.
func ParseSimTime(dayStr, clockStr string) (SimTime, error) {
	var day, hour, minute int
	if _, err := fmt.Sscanf(dayStr, "%d", &day); err != nil {
		return SimTime{}, fmt.Errorf("invalid day %q: %w", dayStr, err)
	}
	if _, err := fmt.Sscanf(clockStr, "%d:%d", &hour, &minute); err != nil {
		return SimTime{}, fmt.Errorf("invalid clock %q: %w", clockStr, err)
	}
	if day < 1 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return SimTime{}, fmt.Errorf("time %s %s out of range", dayStr, clockStr)
	}
	return SimTime{Day: day, Hour: hour, Minute: minute}, nil
}
