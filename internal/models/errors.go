package models

import "errors"

// RejectionKind classifies why a command was refused. Rejections are
// non-fatal: the simulation reports them and carries on with state untouched.
type RejectionKind string

const (
	RejectDurationExceeded       RejectionKind = "DURATION_EXCEEDED"
	RejectAppointmentTooClose    RejectionKind = "APPOINTMENT_TOO_CLOSE"
	RejectAppointmentActiveClash RejectionKind = "APPOINTMENT_CONFLICTS_WITH_ACTIVE_DELIVERY"
	RejectAppointmentWindowClash RejectionKind = "APPOINTMENT_WINDOW_OVERLAP"
	RejectNotFound               RejectionKind = "NOT_FOUND"
	RejectAlreadyProcessed       RejectionKind = "ALREADY_PROCESSED"
)

// RejectionError pairs a machine-readable kind with the sentence the
// console output prints after "ERROR:".
type RejectionError struct {
	Kind    RejectionKind
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func NewRejection(kind RejectionKind, message string) *RejectionError {
	return &RejectionError{Kind: kind, Message: message}
}

// AsRejection unwraps err into a RejectionError if it carries one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
