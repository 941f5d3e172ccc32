// Package matching implements label-to-catalog comparison with a clear
// separation:
// - Retrieval = recall (BM25 shortlist from the catalog index)
// - Scoring = precision (the rubric, behind a pluggable Scorer)
// - Compare = the decision (auto-match, human review, or no match)
package matching

import (
	"context"
	"sort"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/retrieval"
	"github.com/Ramsey-B/cuvee/pkg/scoring"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// Scorer scores retrieval candidates against a query label on the 0-10
// rubric scale. Implementations: the deterministic rules scorer and the
// LLM-backed scorer.
type Scorer interface {
	ScoreCandidates(ctx context.Context, query string, candidates []models.Candidate) ([]models.ScoredCandidate, error)
}

// CatalogProvider supplies the retrieval index for the current catalog
// snapshot.
type CatalogProvider interface {
	Index(ctx context.Context) (*retrieval.Index, error)
}

// Config holds matching configuration
type Config struct {
	RetrievalLimit  int // candidates pulled from the index per query
	TopCandidates   int // candidates kept after scoring
	ReviewThreshold int // best score must exceed this to auto-match
}

// DefaultConfig returns the default matching configuration
func DefaultConfig() Config {
	return Config{
		RetrievalLimit:  5,
		TopCandidates:   3,
		ReviewThreshold: 7,
	}
}

// Service compares scanned wine labels against the product catalog.
type Service struct {
	config  Config
	catalog CatalogProvider
	scorer  Scorer
	log     ectologger.Logger
}

// NewService creates a new matching service
func NewService(config Config, catalog CatalogProvider, scorer Scorer, log ectologger.Logger) *Service {
	if config.RetrievalLimit <= 0 {
		config.RetrievalLimit = DefaultConfig().RetrievalLimit
	}
	if config.TopCandidates <= 0 {
		config.TopCandidates = DefaultConfig().TopCandidates
	}
	if config.ReviewThreshold <= 0 {
		config.ReviewThreshold = DefaultConfig().ReviewThreshold
	}

	return &Service{
		config:  config,
		catalog: catalog,
		scorer:  scorer,
		log:     log,
	}
}

// Compare runs one label through retrieval and scoring and decides the
// outcome: an auto-matched product, a top-3 shortlist for human review, or
// no match at all. Scorer failures degrade to a no-match result rather than
// surfacing an error to the caller.
func (s *Service) Compare(ctx context.Context, label string) (*models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.Compare")
	defer span.End()

	result := &models.MatchResult{
		Query:           label,
		NormalizedQuery: scoring.Normalize(label),
		SelectedGID:     models.NoMatchGID,
		Status:          models.MatchStatusNoMatch,
	}

	index, err := s.catalog.Index(ctx)
	if err != nil {
		return nil, err
	}

	candidates := index.Search(label, s.config.RetrievalLimit)
	if len(candidates) == 0 {
		s.log.WithContext(ctx).WithField("query", label).Warn("No retrieval candidates for label")
		return result, nil
	}

	scored, err := s.scorer.ScoreCandidates(ctx, label, candidates)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).WithField("query", label).Warn("Scorer failed, treating label as unmatched")
		scored = nil
	}
	if len(scored) == 0 {
		return result, nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > s.config.TopCandidates {
		scored = scored[:s.config.TopCandidates]
	}
	for i := range scored {
		if scored[i].Score < scoring.MinScore {
			scored[i].Score = scoring.MinScore
		}
		if scored[i].Score > scoring.MaxScore {
			scored[i].Score = scoring.MaxScore
		}
	}

	result.Candidates = scored

	best := scored[0]
	if best.Score > s.config.ReviewThreshold {
		result.SelectedGID = best.GID
		result.Status = models.MatchStatusAutoMatched
	} else {
		result.NeedsHumanReview = true
		result.ReviewReason = models.ReviewReasonBelowThreshold
		result.Status = models.MatchStatusPendingReview
	}

	s.log.WithContext(ctx).WithFields(map[string]any{
		"query":        label,
		"selected_gid": result.SelectedGID,
		"needs_review": result.NeedsHumanReview,
		"best_score":   best.Score,
	}).Debug("Compared label against catalog")

	return result, nil
}
