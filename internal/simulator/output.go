package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/chrisdamba/deliverysim/internal/cloudwriter"
	"github.com/chrisdamba/deliverysim/internal/models"
	"github.com/chrisdamba/deliverysim/internal/output"
	"github.com/chrisdamba/deliverysim/internal/simulator/producers"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// ConsoleOutput prints the human-readable sentence of each event, one
// line per event, in tick order.
type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}
	line, ok := event["message"].(string)
	if !ok {
		return fmt.Errorf("event on topic %s has no message field", topic)
	}
	if _, err := fmt.Fprintln(os.Stdout, line); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// JSONOutput appends one JSON line per event to per-topic files,
// partitioned by simulated day.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	partitionPath, err := simDayPartition(event)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(j.basePath, j.folder, topic, partitionPath)
	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// ParquetOutput writes one Parquet file per topic and simulated day,
// locally or to cloud storage through the cloudwriter factory.
type ParquetOutput struct {
	basePath           string
	folder             string
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.CloudStorage.Provider != "" {
		switch config.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(context.Background(), config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
	}

	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	partitionPath, err := simDayPartition(event)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(p.basePath, p.folder, topic, partitionPath)

	writerKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, fullPath, topic)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(writerKey, fullPath, topic string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	var err error
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(fullPath, "data.parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = cloudwriter.NewCloudParquetFile(cw)
	} else {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	sc, err := GetSchema(topic)
	if err != nil {
		return nil, err
	}

	pw, err := writer.NewParquetWriter(fw, nil, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.SchemaHandler = sc

	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing writer for key %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing file for key %s: %v", key, err)
			}
		}
	}
	return lastErr
}

func simDayPartition(event map[string]interface{}) (string, error) {
	abs, ok := event["absoluteMinute"].(float64)
	if !ok {
		return "", fmt.Errorf("invalid absoluteMinute")
	}
	return fmt.Sprintf("day=%02d", int(abs)/(24*60)+1), nil
}

func (s *Scheduler) determineOutputDestination() (OutputDestination, error) {
	switch s.Config.OutputDestination {
	case "", "console":
		return &ConsoleOutput{}, nil
	case "file":
		return NewJSONOutput(s.Config.OutputPath, s.Config.OutputFolder), nil
	case "parquet":
		return NewParquetOutput(s.Config)
	case "kafka":
		return producers.NewSaramaProducer(s.Config)
	case "postgres":
		return output.NewPostgresOutput(context.Background(), &s.Config.Database)
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", s.Config.OutputDestination)
	}
}

func serializeEvent(ev *models.Event) (models.EventMessage, error) {
	base := BaseEvent{
		AbsoluteMinute: int64(ev.Time.AbsoluteMinutes()),
		SimTime:        ev.Time.String(),
		EventType:      ev.Type,
	}

	var topic string
	var payload interface{}

	switch ev.Type {
	case models.EventRequestAccepted:
		req := ev.Data.(*models.Request)
		base.RequestID = req.ID
		base.Message = fmt.Sprintf("%s %s has been accepted.", ev.Time, req.ID)
		target := ""
		if req.TargetTime != nil {
			target = req.TargetTime.String()
		}
		payload = RequestAcceptedEvent{
			BaseEvent:       base,
			Class:           string(req.Class),
			DurationMinutes: int32(req.Duration),
			TargetTime:      target,
		}
		topic = TopicAccepted

	case models.EventRequestRejected:
		rej := ev.Data.(*models.RejectedSubmission)
		base.RequestID = rej.Command.RequestID
		base.Message = fmt.Sprintf("%s ERROR: %s", ev.Time, rej.Rejection.Message)
		payload = RequestRejectedEvent{
			BaseEvent:   base,
			CommandKind: rej.Command.Kind.String(),
			Reason:      string(rej.Rejection.Kind),
		}
		topic = TopicRejected

	case models.EventRequestAssigned:
		req := ev.Data.(*models.Request)
		base.RequestID = req.ID
		base.Message = fmt.Sprintf("%s %s has been assigned.", ev.Time, req.ID)
		payload = AssignmentEvent{
			BaseEvent:       base,
			Class:           string(req.Class),
			DurationMinutes: int32(req.Duration),
			CompletionTime:  req.CompletionTime.String(),
		}
		topic = TopicAssigned

	case models.EventRequestDelivered:
		req := ev.Data.(*models.Request)
		base.RequestID = req.ID
		base.Message = fmt.Sprintf("%s %s has been delivered.", ev.Time, req.ID)
		payload = DeliveryEvent{
			BaseEvent:      base,
			Class:          string(req.Class),
			CompletionTime: req.CompletionTime.String(),
		}
		topic = TopicDelivered

	case models.EventRequestCancelled:
		req := ev.Data.(*models.Request)
		base.RequestID = req.ID
		base.Message = fmt.Sprintf("%s %s has been cancelled.", ev.Time, req.ID)
		payload = CancellationEvent{BaseEvent: base, Class: string(req.Class)}
		topic = TopicCancelled

	case models.EventStatusReport:
		report := ev.Data.(*models.StatusReport)
		base.RequestID = report.RequestID
		base.Message = fmt.Sprintf("%s %s", ev.Time, statusSentence(report))
		payload = StatusEvent{BaseEvent: base, Status: report.Status}
		topic = TopicStatus

	default:
		return models.EventMessage{}, fmt.Errorf("unknown event type: %s", ev.Type)
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		return models.EventMessage{}, fmt.Errorf("failed to marshal %s event: %w", ev.Type, err)
	}
	return models.EventMessage{Topic: topic, Message: msg}, nil
}

func statusSentence(report *models.StatusReport) string {
	switch report.Status {
	case models.StatusAwaiting:
		return fmt.Sprintf("%s is awaiting delivery.", report.RequestID)
	case models.StatusDelivering:
		return fmt.Sprintf("%s is being delivered.", report.RequestID)
	default:
		return fmt.Sprintf("%s has been delivered.", report.RequestID)
	}
}
