package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/scoring"
)

type rawScored struct {
	GID    string  `json:"gid"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// DecodeScoredCandidates parses the model's JSON reply. Models sometimes
// wrap the array in prose or code fences, so a strict parse is followed by
// a scan for the outermost [...] block. Scores are rounded to integers and
// clamped to the rubric range.
func DecodeScoredCandidates(reply string) ([]models.ScoredCandidate, error) {
	reply = strings.TrimSpace(reply)

	var raw []rawScored
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		start := strings.Index(reply, "[")
		end := strings.LastIndex(reply, "]")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON array in model reply")
		}
		if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
			return nil, fmt.Errorf("decode scored candidates: %w", err)
		}
	}

	scored := make([]models.ScoredCandidate, 0, len(raw))
	for _, r := range raw {
		if r.GID == "" {
			continue
		}
		scored = append(scored, models.ScoredCandidate{
			GID:    r.GID,
			Title:  r.Title,
			Score:  clampScore(r.Score),
			Reason: r.Reason,
		})
	}

	return scored, nil
}

func clampScore(score float64) int {
	n := int(math.Round(score))
	if n < scoring.MinScore {
		return scoring.MinScore
	}
	if n > scoring.MaxScore {
		return scoring.MaxScore
	}
	return n
}
