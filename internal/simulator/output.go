package simulator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/chrisdamba/lunchrush/internal/simulator/producers"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// DiscardOutput drops every event. Used when no event stream is configured.
type DiscardOutput struct{}

func (DiscardOutput) WriteMessage(string, []byte) error { return nil }
func (DiscardOutput) Close() error                      { return nil }

type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, string(msg)); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends events as JSON lines, one file per topic and day:
// <basePath>/<topic>/date=YYYY-MM-DD/data.json
type JSONOutput struct {
	basePath string
	files    map[string]*os.File
}

func NewJSONOutput(basePath string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	var event struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	partitionPath := fmt.Sprintf("date=%s", time.Unix(event.Timestamp, 0).Format("2006-01-02"))
	fullPath := filepath.Join(j.basePath, topic, partitionPath)

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open file for topic %s: %w", topic, err)
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	var lastErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil {
			lastErr = err
		}
		delete(j.files, key)
	}
	return lastErr
}

// NewOutputDestination picks the event stream target from the config.
func NewOutputDestination(cfg *models.Config, console io.Writer) (OutputDestination, error) {
	switch cfg.Output.Destination {
	case models.OutputNone, "":
		return DiscardOutput{}, nil
	case models.OutputConsole:
		return NewConsoleOutput(console), nil
	case models.OutputJSON:
		return NewJSONOutput(cfg.Output.Path), nil
	case models.OutputKafka:
		producer, err := producers.NewSaramaProducer(cfg.Kafka.BrokerList)
		if err != nil {
			return nil, err
		}
		return producer, nil
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", cfg.Output.Destination)
	}
}
