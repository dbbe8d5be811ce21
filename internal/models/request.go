package models

type RequestClass string

const (
	ClassNormal      RequestClass = "NORMAL"
	ClassExpress     RequestClass = "EXPRESS"
	ClassAppointment RequestClass = "APPOINTMENT"
)

const (
	StatusAwaiting   = "awaiting"
	StatusDelivering = "delivering"
	StatusDelivered  = "delivered"
)

const (
	// MaxDuration is the longest delivery accepted for NORMAL and EXPRESS requests.
	MaxDuration = 120
	// MaxAppointmentDuration is the longest delivery accepted for APPOINTMENT requests.
	MaxAppointmentDuration = 60
)

// Request is a single delivery job tracked from submission to completion.
type Request struct {
	ID          string       `json:"id"`
	Class       RequestClass `json:"class"`
	SubmittedAt SimTime      `json:"submitted_at"`
	Duration    int          `json:"duration_minutes"`
	Status      string       `json:"status"` // "awaiting", "delivering", "delivered"

	// TargetTime is the promised completion time; set only for appointments.
	TargetTime *SimTime `json:"target_time,omitempty"`
	// CompletionTime is fixed at assignment and compared against the clock
	// each tick to detect completion.
	CompletionTime *SimTime `json:"completion_time,omitempty"`
}

func NewRequest(id string, class RequestClass, submittedAt SimTime, duration int) *Request {
	return &Request{
		ID:          id,
		Class:       class,
		SubmittedAt: submittedAt,
		Duration:    duration,
		Status:      StatusAwaiting,
	}
}

func NewAppointmentRequest(id string, submittedAt SimTime, duration int, target SimTime) *Request {
	req := NewRequest(id, ClassAppointment, submittedAt, duration)
	req.TargetTime = &target
	return req
}

// MaxAllowedDuration returns the duration cap for the request's class.
func (r *Request) MaxAllowedDuration() int {
	if r.Class == ClassAppointment {
		return MaxAppointmentDuration
	}
	return MaxDuration
}

// ReservedWindow returns the busy window an appointment claims on the
// courier's calendar: the half-open span ending exactly at the target time.
// The second return value is false for non-appointment requests.
func (r *Request) ReservedWindow() (Interval, bool) {
	if r.Class != ClassAppointment || r.TargetTime == nil {
		return Interval{}, false
	}
	return Interval{Start: r.TargetTime.Add(-r.Duration), End: *r.TargetTime}, true
}
