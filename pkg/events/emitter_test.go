package events

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/cuvee/pkg/models"
)

var noopLog = ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

func TestEventTypeFor(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "auto matched", status: models.MatchStatusAutoMatched, want: EventMatchDecided},
		{name: "pending review", status: models.MatchStatusPendingReview, want: EventMatchReviewRequired},
		{name: "no match", status: models.MatchStatusNoMatch, want: EventMatchNoMatch},
		{name: "approved resolves as decided", status: models.MatchStatusApproved, want: EventMatchDecided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eventTypeFor(&models.MatchResult{Status: tt.status}))
		})
	}
}

func TestBuildEvent(t *testing.T) {
	result := &models.MatchResult{
		ID:               "0199cafe-0000-0000-0000-000000000001",
		Query:            "2019 Chateau Test Pauillac",
		SelectedGID:      models.NoMatchGID,
		NeedsHumanReview: true,
		ReviewReason:     models.ReviewReasonBelowThreshold,
		Status:           models.MatchStatusPendingReview,
		Candidates: []models.ScoredCandidate{
			{GID: "gid://shopify/Product/1", Title: "2019 Chateau Test Pauillac", Score: 7},
		},
	}

	event := buildEvent(result)

	assert.Equal(t, EventMatchReviewRequired, event.EventType)
	assert.Equal(t, result.ID, event.ResultID)
	assert.Equal(t, result.Query, event.Query)
	assert.Equal(t, models.NoMatchGID, event.SelectedGID)
	assert.True(t, event.NeedsHumanReview)
	assert.Equal(t, models.ReviewReasonBelowThreshold, event.ReviewReason)
	require.Len(t, event.Candidates, 1)
	assert.Equal(t, "gid://shopify/Product/1", event.Candidates[0].GID)
}

func TestEmitWithoutProducer(t *testing.T) {
	results := []*models.MatchResult{
		{Status: models.MatchStatusAutoMatched},
		{Status: models.MatchStatusPendingReview},
	}

	t.Run("disabled emitter is a no-op", func(t *testing.T) {
		e := NewEmitter(nil, noopLog)
		assert.NoError(t, e.EmitMatchResult(context.Background(), results[0]))
		assert.NoError(t, e.EmitMatchResults(context.Background(), results))
	})

	t.Run("nil emitter is a no-op", func(t *testing.T) {
		var e *Emitter
		assert.NoError(t, e.EmitMatchResult(context.Background(), results[0]))
		assert.NoError(t, e.EmitMatchResults(context.Background(), results))
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		e := NewEmitter(nil, noopLog)
		assert.NoError(t, e.EmitMatchResults(context.Background(), nil))
	})
}
