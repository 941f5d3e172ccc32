package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	requiredAcks := kafka.RequiredAcks(cfg.RequiredAcks)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           requiredAcks,
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// MatchEvent describes the outcome of one label comparison
type MatchEvent struct {
	EventType        string                   `json:"event_type"` // match.decided, match.review_required, match.no_match
	ResultID         string                   `json:"result_id,omitempty"`
	Query            string                   `json:"query"`
	SelectedGID      string                   `json:"selected_gid"`
	NeedsHumanReview bool                     `json:"needs_human_review"`
	ReviewReason     string                   `json:"review_reason,omitempty"`
	Candidates       []models.ScoredCandidate `json:"candidates,omitempty"`
	Timestamp        time.Time                `json:"timestamp"`
}

// PublishMatchEvent publishes a match event to Kafka
func (p *Producer) PublishMatchEvent(ctx context.Context, event *MatchEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishMatchEvent")
	defer span.End()

	msg, err := p.buildMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish match event")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type":   event.EventType,
		"query":        event.Query,
		"selected_gid": event.SelectedGID,
	}).Debug("Published match event")

	return nil
}

// PublishMatchEvents publishes multiple match events in a batch
func (p *Producer) PublishMatchEvents(ctx context.Context, events []*MatchEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishMatchEvents")
	defer span.End()

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))
	for i, event := range events {
		msg, err := p.buildMessage(event)
		if err != nil {
			return err
		}
		messages[i] = msg
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_size": len(events),
		}).Error("Failed to publish match events batch")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_size": len(events),
	}).Debug("Published match events batch")

	return nil
}

func (p *Producer) buildMessage(event *MatchEvent) (kafka.Message, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.Query),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "selected_gid", Value: []byte(event.SelectedGID)},
			{Key: "schema_version", Value: []byte("1.0")},
		},
	}, nil
}
