package simulator

import (
	"fmt"

	"github.com/xitongsys/parquet-go/schema"
)

const (
	TopicAccepted  = "request_accepted_events"
	TopicRejected  = "request_rejected_events"
	TopicAssigned  = "assignment_events"
	TopicDelivered = "delivery_events"
	TopicCancelled = "cancellation_events"
	TopicStatus    = "status_events"
)

// BaseEvent is the common structure for all serialized events. Message
// carries the human-readable sentence the console sink prints.
type BaseEvent struct {
	AbsoluteMinute int64  `json:"absoluteMinute" parquet:"name=absoluteMinute,type=INT64"`
	SimTime        string `json:"simTime" parquet:"name=simTime,type=BYTE_ARRAY,convertedtype=UTF8"`
	EventType      string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	RequestID      string `json:"requestId,omitempty" parquet:"name=requestId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Message        string `json:"message" parquet:"name=message,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// RequestAcceptedEvent represents a submission passing intake validation
type RequestAcceptedEvent struct {
	BaseEvent
	Class           string `json:"class" parquet:"name=class,type=BYTE_ARRAY,convertedtype=UTF8"`
	DurationMinutes int32  `json:"durationMinutes" parquet:"name=durationMinutes,type=INT32"`
	TargetTime      string `json:"targetTime,omitempty" parquet:"name=targetTime,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
}

// RequestRejectedEvent represents a command refused at intake
type RequestRejectedEvent struct {
	BaseEvent
	CommandKind string `json:"commandKind" parquet:"name=commandKind,type=BYTE_ARRAY,convertedtype=UTF8"`
	Reason      string `json:"reason" parquet:"name=reason,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// AssignmentEvent represents the courier starting a delivery
type AssignmentEvent struct {
	BaseEvent
	Class           string `json:"class" parquet:"name=class,type=BYTE_ARRAY,convertedtype=UTF8"`
	DurationMinutes int32  `json:"durationMinutes" parquet:"name=durationMinutes,type=INT32"`
	CompletionTime  string `json:"completionTime" parquet:"name=completionTime,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// DeliveryEvent represents a delivery finishing on schedule
type DeliveryEvent struct {
	BaseEvent
	Class          string `json:"class" parquet:"name=class,type=BYTE_ARRAY,convertedtype=UTF8"`
	CompletionTime string `json:"completionTime" parquet:"name=completionTime,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// CancellationEvent represents an awaiting request being withdrawn
type CancellationEvent struct {
	BaseEvent
	Class string `json:"class" parquet:"name=class,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// StatusEvent answers a STATUS query
type StatusEvent struct {
	BaseEvent
	Status string `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

func GetSchema(topic string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch topic {
	case TopicAccepted:
		sh, err = schema.NewSchemaHandlerFromStruct(new(RequestAcceptedEvent))
	case TopicRejected:
		sh, err = schema.NewSchemaHandlerFromStruct(new(RequestRejectedEvent))
	case TopicAssigned:
		sh, err = schema.NewSchemaHandlerFromStruct(new(AssignmentEvent))
	case TopicDelivered:
		sh, err = schema.NewSchemaHandlerFromStruct(new(DeliveryEvent))
	case TopicCancelled:
		sh, err = schema.NewSchemaHandlerFromStruct(new(CancellationEvent))
	case TopicStatus:
		sh, err = schema.NewSchemaHandlerFromStruct(new(StatusEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating schema for %s: %w", topic, err)
	}
	return sh, nil
}
