package simulator

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/deliverysim/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSerializeEventTopicsAndSentences(t *testing.T) {
	at := models.NewSimTime(1, 2, 30)
	target := models.NewSimTime(1, 5, 0)
	completion := models.NewSimTime(1, 3, 0)

	appt := models.NewAppointmentRequest("A1", models.NewSimTime(1, 0, 0), 30, target)
	express := models.NewRequest("E1", models.ClassExpress, models.NewSimTime(1, 0, 0), 30)
	express.CompletionTime = &completion

	tests := []struct {
		name    string
		event   *models.Event
		topic   string
		message string
	}{
		{
			name:    "accepted",
			event:   &models.Event{Time: at, Type: models.EventRequestAccepted, Data: appt},
			topic:   TopicAccepted,
			message: "1 02:30 A1 has been accepted.",
		},
		{
			name: "rejected",
			event: &models.Event{Time: at, Type: models.EventRequestRejected, Data: &models.RejectedSubmission{
				Command:   models.Command{Time: at, Kind: models.CommandSubmitNormal, RequestID: "N1", Duration: 121},
				Rejection: models.NewRejection(models.RejectDurationExceeded, "Delivery time cannot exceed 120 minutes."),
			}},
			topic:   TopicRejected,
			message: "1 02:30 ERROR: Delivery time cannot exceed 120 minutes.",
		},
		{
			name:    "assigned",
			event:   &models.Event{Time: at, Type: models.EventRequestAssigned, Data: express},
			topic:   TopicAssigned,
			message: "1 02:30 E1 has been assigned.",
		},
		{
			name:    "delivered",
			event:   &models.Event{Time: at, Type: models.EventRequestDelivered, Data: express},
			topic:   TopicDelivered,
			message: "1 02:30 E1 has been delivered.",
		},
		{
			name:    "cancelled",
			event:   &models.Event{Time: at, Type: models.EventRequestCancelled, Data: appt},
			topic:   TopicCancelled,
			message: "1 02:30 A1 has been cancelled.",
		},
		{
			name: "status awaiting",
			event: &models.Event{Time: at, Type: models.EventStatusReport, Data: &models.StatusReport{
				RequestID: "N2", Status: models.StatusAwaiting,
			}},
			topic:   TopicStatus,
			message: "1 02:30 N2 is awaiting delivery.",
		},
		{
			name: "status delivering",
			event: &models.Event{Time: at, Type: models.EventStatusReport, Data: &models.StatusReport{
				RequestID: "N2", Status: models.StatusDelivering,
			}},
			topic:   TopicStatus,
			message: "1 02:30 N2 is being delivered.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := serializeEvent(tt.event)
			require.NoError(t, err)
			require.Equal(t, tt.topic, msg.Topic)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(msg.Message, &decoded))
			require.Equal(t, tt.message, decoded["message"])
			require.Equal(t, float64(tt.event.Time.AbsoluteMinutes()), decoded["absoluteMinute"])
		})
	}
}

func TestSerializeEventUnknownType(t *testing.T) {
	_, err := serializeEvent(&models.Event{Time: models.NewSimTime(1, 0, 0), Type: "bogus"})
	require.Error(t, err)
}

func TestSimDayPartition(t *testing.T) {
	tests := []struct {
		abs  float64
		want string
	}{
		{abs: 0, want: "day=01"},
		{abs: 1439, want: "day=01"},
		{abs: 1440, want: "day=02"},
		{abs: 1500, want: "day=02"},
	}
	for _, tt := range tests {
		got, err := simDayPartition(map[string]interface{}{"absoluteMinute": tt.abs})
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := simDayPartition(map[string]interface{}{})
	require.Error(t, err)
}

func TestJSONOutputPartitionsByTopicAndDay(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "events")

	write := func(day int, id string) {
		at := models.NewSimTime(day, 1, 0)
		req := models.NewRequest(id, models.ClassNormal, at, 30)
		msg, err := serializeEvent(&models.Event{Time: at, Type: models.EventRequestAccepted, Data: req})
		require.NoError(t, err)
		require.NoError(t, out.WriteMessage(msg.Topic, msg.Message))
	}

	write(1, "D1")
	write(1, "D2")
	write(2, "D3")
	require.NoError(t, out.Close())

	day1 := filepath.Join(dir, "events", TopicAccepted, "day=01", "data.json")
	day2 := filepath.Join(dir, "events", TopicAccepted, "day=02", "data.json")

	require.Equal(t, 2, countLines(t, day1))
	require.Equal(t, 1, countLines(t, day2))
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	require.NoError(t, scanner.Err())
	return n
}

func TestConsoleOutputRejectsMessagelessEvents(t *testing.T) {
	c := &ConsoleOutput{}
	require.Error(t, c.WriteMessage(TopicAccepted, []byte(`{"eventType":"x"}`)))
	require.Error(t, c.WriteMessage(TopicAccepted, []byte(`not json`)))
}
