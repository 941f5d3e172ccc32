package llm

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/cuvee/pkg/models"
)

const rubric = `Scoring rubric (deterministic, text-based only):
- Normalize both texts: remove accents/diacritics, collapse whitespace.
- Do NOT use wine-encyclopedic knowledge. No sub-appellation or region
  inference. Base every match on direct text comparison only.
- A field matches when the values are identical after normalization or
  differ by at most one character (single-character typo).
- Fields: Vintage, Producer, Appellation, Classification, Cru, Vineyard,
  Style/Variety, Format.
- Start at 0 and add +2 for each matched field.
- Vintage: a 2-digit vintage is equivalent to its 4-digit year ("21" is
  "2021", "78" is "1978"). If the candidate has no vintage, the field is
  neutral (no points either way). If BOTH sides have a vintage and they do
  not match, subtract 5 from the computed score.
- Clamp the final score to whole integers 0..10. Never return decimals.
- Generic shared words alone ("Chateau", "Grand Cru Classe") must not
  produce a high score; only the fields actually matched earn points.`

// BuildScoringPrompt renders the rubric prompt for one query label and its
// retrieval candidates.
func BuildScoringPrompt(query string, candidates []models.Candidate) string {
	var sb strings.Builder
	sb.WriteString("You are a wine-label matching assistant.\n\n")
	fmt.Fprintf(&sb, "Scanned label text: %q\n", query)
	sb.WriteString("Catalog candidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- gid: %s\n  title: %s\n  retrieval score: %.3f\n", c.GID, c.Title, c.Score)
	}
	sb.WriteString("\n")
	sb.WriteString(rubric)
	sb.WriteString("\n\nTask: score every candidate against the label, then return a JSON array of the top-3 candidates by score, highest first. Each element:\n")
	sb.WriteString(`{"gid": "<candidate gid>", "title": "<candidate title>", "score": <integer 0-10>, "reason": "<one line listing matched fields and any vintage penalty>"}`)
	sb.WriteString("\n\nReturn ONLY the JSON array, nothing else.")
	return sb.String()
}
