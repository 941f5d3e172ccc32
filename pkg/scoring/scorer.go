package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ramsey-B/cuvee/pkg/models"
)

// Score bounds for the rubric
const (
	MinScore = 0
	MaxScore = 10
)

const (
	matchPoints    = 2
	vintagePenalty = 5
)

// Scorer applies the comparison rubric deterministically: +2 per matched
// field, a flat -5 for a vintage mismatch, final score clamped to 0-10.
// Only literal field matches earn credit; no regional or hierarchical
// knowledge is inferred.
type Scorer struct{}

// NewScorer creates a new rubric scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// ScoreCandidates scores every retrieval candidate against the query label.
func (s *Scorer) ScoreCandidates(ctx context.Context, query string, candidates []models.Candidate) ([]models.ScoredCandidate, error) {
	queryFields := ExtractFields(query)

	scored := make([]models.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		score, reason := s.score(queryFields, ExtractFields(c.Title))
		scored = append(scored, models.ScoredCandidate{
			GID:    c.GID,
			Title:  c.Title,
			Score:  score,
			Reason: reason,
		})
	}

	return scored, nil
}

func (s *Scorer) score(q, c LabelFields) (int, string) {
	score := 0
	var matched []string
	var vintageNote string

	switch compareVintage(q.Vintage, c.Vintage) {
	case vintageMatch:
		score += matchPoints
		matched = append(matched, FieldVintage)
	case vintageMismatch:
		score -= vintagePenalty
		vintageNote = fmt.Sprintf("vintage mismatch (%s vs %s)", q.Vintage, c.Vintage)
	}

	pairs := []struct {
		name string
		a, b string
	}{
		{FieldProducer, q.Producer, c.Producer},
		{FieldAppellation, q.Appellation, c.Appellation},
		{FieldClassification, q.Classification, c.Classification},
		{FieldCru, q.Cru, c.Cru},
		{FieldVineyard, q.Vineyard, c.Vineyard},
		{FieldStyle, q.Style, c.Style},
		{FieldFormat, q.Format, c.Format},
	}
	for _, p := range pairs {
		if p.a != "" && p.b != "" && fuzzyEqual(p.a, p.b) {
			score += matchPoints
			matched = append(matched, p.name)
		}
	}

	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}

	return score, buildReason(matched, vintageNote)
}

func buildReason(matched []string, vintageNote string) string {
	var parts []string
	if len(matched) > 0 {
		parts = append(parts, "matched "+strings.Join(matched, ", "))
	} else {
		parts = append(parts, "no rubric fields matched")
	}
	if vintageNote != "" {
		parts = append(parts, vintageNote)
	}
	return strings.Join(parts, "; ")
}
