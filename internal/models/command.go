package models

// CommandKind tags the variants of Command. Submissions, cancellation and
// status queries all flow through the same exhaustive switch in the
// scheduler, so adding a kind without handling it is a compile-time smell
// rather than a silent lookup miss.
type CommandKind int

const (
	CommandSubmitNormal CommandKind = iota
	CommandSubmitExpress
	CommandSubmitAppointment
	CommandCancel
	CommandStatus
)

func (k CommandKind) String() string {
	switch k {
	case CommandSubmitNormal:
		return "NORMAL"
	case CommandSubmitExpress:
		return "EXPRESS"
	case CommandSubmitAppointment:
		return "APPOINTMENT"
	case CommandCancel:
		return "CANCEL"
	case CommandStatus:
		return "STATUS"
	}
	return "UNKNOWN"
}

// IsSubmission reports whether the kind creates a new request.
func (k CommandKind) IsSubmission() bool {
	return k == CommandSubmitNormal || k == CommandSubmitExpress || k == CommandSubmitAppointment
}

// Class maps a submission kind to its request class.
func (k CommandKind) Class() RequestClass {
	switch k {
	case CommandSubmitExpress:
		return ClassExpress
	case CommandSubmitAppointment:
		return ClassAppointment
	default:
		return ClassNormal
	}
}

// Command is one externally supplied instruction with its event timestamp.
// Duration is meaningful for submissions only, Target for appointments only.
type Command struct {
	Time      SimTime     `json:"time"`
	Kind      CommandKind `json:"kind"`
	RequestID string      `json:"request_id"`
	Duration  int         `json:"duration_minutes,omitempty"`
	Target    *SimTime    `json:"target_time,omitempty"`
}
