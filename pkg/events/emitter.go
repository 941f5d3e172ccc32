// Package events handles event emission for match decisions
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/cuvee/pkg/kafka"
	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Event types emitted per match outcome
const (
	EventMatchDecided        = "match.decided"
	EventMatchReviewRequired = "match.review_required"
	EventMatchNoMatch        = "match.no_match"
)

// Emitter publishes match decision events
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitMatchResult emits the event matching the result's outcome. A nil
// producer (Kafka disabled) makes this a no-op.
func (e *Emitter) EmitMatchResult(ctx context.Context, result *models.MatchResult) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMatchResult")
	defer span.End()

	if e == nil || e.producer == nil {
		return nil
	}

	event := buildEvent(result)
	if err := e.producer.PublishMatchEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to emit %s event", event.EventType)
		return err
	}

	return nil
}

// EmitMatchResults emits events for a batch of results in one publish.
func (e *Emitter) EmitMatchResults(ctx context.Context, results []*models.MatchResult) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMatchResults")
	defer span.End()

	if e == nil || e.producer == nil || len(results) == 0 {
		return nil
	}

	events := make([]*kafka.MatchEvent, 0, len(results))
	for _, result := range results {
		events = append(events, buildEvent(result))
	}

	if err := e.producer.PublishMatchEvents(ctx, events); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit match events batch")
		return err
	}

	return nil
}

func eventTypeFor(result *models.MatchResult) string {
	switch result.Status {
	case models.MatchStatusPendingReview:
		return EventMatchReviewRequired
	case models.MatchStatusNoMatch:
		return EventMatchNoMatch
	default:
		return EventMatchDecided
	}
}

func buildEvent(result *models.MatchResult) *kafka.MatchEvent {
	return &kafka.MatchEvent{
		EventType:        eventTypeFor(result),
		ResultID:         result.ID,
		Query:            result.Query,
		SelectedGID:      result.SelectedGID,
		NeedsHumanReview: result.NeedsHumanReview,
		ReviewReason:     result.ReviewReason,
		Candidates:       result.Candidates,
	}
}
