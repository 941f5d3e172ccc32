package llm

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// Scorer asks the model to apply the rubric. It satisfies the same contract
// as the rules scorer; any client or decode failure is returned as an error
// and the caller degrades to a no-match result.
type Scorer struct {
	client *Client
	log    ectologger.Logger
}

// NewScorer creates a new LLM-backed scorer
func NewScorer(client *Client, log ectologger.Logger) *Scorer {
	return &Scorer{
		client: client,
		log:    log,
	}
}

// ScoreCandidates prompts the model with the rubric and decodes its reply.
func (s *Scorer) ScoreCandidates(ctx context.Context, query string, candidates []models.Candidate) ([]models.ScoredCandidate, error) {
	ctx, span := tracing.StartSpan(ctx, "llm.Scorer.ScoreCandidates")
	defer span.End()

	if len(candidates) == 0 {
		return nil, nil
	}

	reply, err := s.client.GenerateContent(ctx, BuildScoringPrompt(query, candidates))
	if err != nil {
		return nil, err
	}

	scored, err := DecodeScoredCandidates(reply)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).WithField("query", query).Warn("Model reply was not valid JSON")
		return nil, err
	}

	// backfill titles the model omitted or truncated
	titles := make(map[string]string, len(candidates))
	for _, c := range candidates {
		titles[c.GID] = c.Title
	}
	for i := range scored {
		if scored[i].Title == "" {
			scored[i].Title = titles[scored[i].GID]
		}
	}

	return scored, nil
}
