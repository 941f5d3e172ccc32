package retrieval

import (
	"math"
	"sort"

	"github.com/Ramsey-B/cuvee/pkg/models"
)

// Okapi BM25 parameters
const (
	k1 = 1.5
	b  = 0.75
)

// Index is an immutable BM25 index over catalog product titles. Build it
// once per catalog snapshot; Search is safe for concurrent use.
type Index struct {
	gids      []string
	titles    []string
	termFreqs []map[string]int
	docLens   []int
	docFreq   map[string]int
	avgDocLen float64
}

// NewIndex builds an index from catalog products, preserving catalog order.
func NewIndex(products []models.CatalogProduct) *Index {
	ix := &Index{
		gids:      make([]string, 0, len(products)),
		titles:    make([]string, 0, len(products)),
		termFreqs: make([]map[string]int, 0, len(products)),
		docLens:   make([]int, 0, len(products)),
		docFreq:   make(map[string]int),
	}

	totalLen := 0
	for _, p := range products {
		tokens := Tokenize(p.Title)
		freq := make(map[string]int, len(tokens))
		for _, t := range tokens {
			freq[t]++
		}
		for t := range freq {
			ix.docFreq[t]++
		}
		ix.gids = append(ix.gids, p.GID)
		ix.titles = append(ix.titles, p.Title)
		ix.termFreqs = append(ix.termFreqs, freq)
		ix.docLens = append(ix.docLens, len(tokens))
		totalLen += len(tokens)
	}

	if len(products) > 0 {
		ix.avgDocLen = float64(totalLen) / float64(len(products))
	}

	return ix
}

// Len returns the number of indexed products.
func (ix *Index) Len() int {
	return len(ix.gids)
}

// idf uses the +1 shifted Okapi formula so rare terms never score negative.
func (ix *Index) idf(term string) float64 {
	df := ix.docFreq[term]
	if df == 0 {
		return 0
	}
	n := float64(len(ix.gids))
	return math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// Search scores every indexed title against the query, normalizes scores
// against the best hit and returns up to limit candidates sorted by score
// descending. Ties keep catalog order. Scores are rounded to three decimals.
func (ix *Index) Search(query string, limit int) []models.Candidate {
	if ix.Len() == 0 || limit <= 0 {
		return nil
	}

	queryTokens := Tokenize(query)
	scores := make([]float64, ix.Len())
	for i := range ix.termFreqs {
		var score float64
		dl := float64(ix.docLens[i])
		for _, term := range queryTokens {
			tf := float64(ix.termFreqs[i][term])
			if tf == 0 {
				continue
			}
			denom := tf + k1*(1-b+b*dl/ix.avgDocLen)
			score += ix.idf(term) * tf * (k1 + 1) / denom
		}
		scores[i] = score
	}

	// Normalize against the best score. When nothing overlaps the divisor
	// falls back to 1 so every candidate reports 0 instead of NaN.
	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore <= 0 {
		maxScore = 1
	}

	order := make([]int, ix.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if limit > len(order) {
		limit = len(order)
	}
	candidates := make([]models.Candidate, 0, limit)
	for _, i := range order[:limit] {
		candidates = append(candidates, models.Candidate{
			GID:   ix.gids[i],
			Title: ix.titles[i],
			Score: round3(scores[i] / maxScore),
		})
	}

	return candidates
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
