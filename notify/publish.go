// Package notify publishes run-completed events for downstream
// consumers such as the heatmap renderer.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/salience/analysis"
)

// DefaultSubject is the subject run events are published on when the
// configuration leaves it empty.
const DefaultSubject = "salience.run.completed"

// Config configures the NATS publisher.
type Config struct {
	// URL is the NATS server URL. Empty disables publishing.
	URL string `yaml:"url"`

	// Subject is the publish subject. Empty means DefaultSubject.
	Subject string `yaml:"subject"`
}

// MatrixPayload is the wire form of one matrix.
type MatrixPayload struct {
	Periods []string    `json:"periods"`
	Terms   []string    `json:"terms"`
	Values  [][]float64 `json:"values"`
}

// RunCompleted is the message published after a successful run.
type RunCompleted struct {
	RunID          string                   `json:"run_id"`
	CompletedAt    time.Time                `json:"completed_at"`
	TotalDocuments int                      `json:"total_documents"`
	DocumentCounts map[string]int           `json:"document_counts"`
	Vocabulary     []string                 `json:"vocabulary"`
	Matrices       map[string]MatrixPayload `json:"matrices"`
	Files          []string                 `json:"files,omitempty"`
}

// Publisher publishes run events to NATS. A nil Publisher is a valid
// no-op, so callers without a configured broker skip publishing
// without branching.
type Publisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// Connect creates a Publisher, or nil when cfg.URL is empty.
func Connect(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("salience"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	logger.Info("connected to NATS", "url", cfg.URL, "subject", subject)
	return &Publisher{conn: conn, subject: subject, logger: logger}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("drain NATS connection", "error", err)
	}
}

// PublishRunCompleted publishes the run result. Nil receiver is a
// no-op (graceful degradation when no broker is configured).
func (p *Publisher) PublishRunCompleted(result *analysis.Result, files []string) error {
	if p == nil {
		return nil
	}

	msg := RunCompleted{
		RunID:          result.RunID,
		CompletedAt:    result.StartedAt.Add(result.Duration),
		TotalDocuments: result.TotalDocuments,
		DocumentCounts: result.DocumentCounts,
		Vocabulary:     result.Vocabulary,
		Matrices: map[string]MatrixPayload{
			"sum":         toPayload(result.Sum),
			"mean":        toPayload(result.Mean),
			"sum_zscore":  toPayload(result.ZSum),
			"mean_zscore": toPayload(result.ZMean),
		},
		Files: files,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal run event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish run event: %w", err)
	}

	p.logger.Debug("run event published",
		"subject", p.subject,
		"run_id", result.RunID,
		"bytes", len(data))
	return nil
}

// toPayload converts a matrix to its wire form.
func toPayload(m analysis.Matrix) MatrixPayload {
	periods := make([]string, len(m.Periods))
	for i, p := range m.Periods {
		periods[i] = p.String()
	}
	return MatrixPayload{Periods: periods, Terms: m.Terms, Values: m.Values}
}
