package models

const (
	EventRequestAccepted  = "RequestAccepted"
	EventRequestRejected  = "RequestRejected"
	EventRequestAssigned  = "RequestAssigned"
	EventRequestDelivered = "RequestDelivered"
	EventRequestCancelled = "RequestCancelled"
	EventStatusReport     = "StatusReport"
)

// Event is one observable outcome of a tick, before serialization.
type Event struct {
	Time SimTime
	Type string
	Data interface{}
}

// EventMessage is a serialized event ready for an output destination.
type EventMessage struct {
	Topic   string
	Message []byte
}

// RejectedSubmission carries the refused command together with the reason.
type RejectedSubmission struct {
	Command   Command
	Rejection *RejectionError
}

// StatusReport is the answer to a STATUS query.
type StatusReport struct {
	RequestID string
	Status    string
}
