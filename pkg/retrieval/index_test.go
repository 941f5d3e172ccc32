package retrieval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/cuvee/pkg/models"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and splits on whitespace",
			input: "2021 Domaine Example",
			want:  []string{"2021", "domaine", "example"},
		},
		{
			name:  "splits on punctuation",
			input: "Cabernet-Sauvignon (2020)",
			want:  []string{"cabernet", "sauvignon", "2020"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
			// same input always tokenizes the same way
			assert.Equal(t, Tokenize(tt.input), Tokenize(tt.input))
		})
	}
}

func testProducts() []models.CatalogProduct {
	return []models.CatalogProduct{
		{GID: "gid://shopify/Product/1", Title: "2019 Chateau Test Pauillac Grand Cru Classe"},
		{GID: "gid://shopify/Product/2", Title: "2007 Chateau Autre Margaux"},
		{GID: "gid://shopify/Product/3", Title: "Domaine Example Chardonnay"},
		{GID: "gid://shopify/Product/4", Title: "2015 Bodega Rioja Reserva"},
		{GID: "gid://shopify/Product/5", Title: "2019 Chateau Test Pauillac"},
	}
}

func TestIndexSearch(t *testing.T) {
	ix := NewIndex(testProducts())

	t.Run("exact title is the top hit with score 1", func(t *testing.T) {
		candidates := ix.Search("2019 Chateau Test Pauillac Grand Cru Classe", 5)
		require.Len(t, candidates, 5)

		assert.Equal(t, "gid://shopify/Product/1", candidates[0].GID)
		assert.Equal(t, 1.0, candidates[0].Score)

		for i := 1; i < len(candidates); i++ {
			assert.LessOrEqual(t, candidates[i].Score, candidates[i-1].Score)
		}
		for _, c := range candidates {
			assert.GreaterOrEqual(t, c.Score, 0.0)
			assert.LessOrEqual(t, c.Score, 1.0)
		}
	})

	t.Run("scores are rounded to three decimals", func(t *testing.T) {
		for _, c := range ix.Search("chateau pauillac", 5) {
			assert.Equal(t, math.Round(c.Score*1000)/1000, c.Score)
		}
	})

	t.Run("limit truncates the result", func(t *testing.T) {
		assert.Len(t, ix.Search("chateau", 2), 2)
	})

	t.Run("no token overlap returns zero scores in catalog order", func(t *testing.T) {
		candidates := ix.Search("zzz qqq", 3)
		require.Len(t, candidates, 3)
		assert.Equal(t, "gid://shopify/Product/1", candidates[0].GID)
		assert.Equal(t, "gid://shopify/Product/2", candidates[1].GID)
		assert.Equal(t, "gid://shopify/Product/3", candidates[2].GID)
		for _, c := range candidates {
			assert.Equal(t, 0.0, c.Score)
		}
	})

	t.Run("empty catalog returns no candidates", func(t *testing.T) {
		empty := NewIndex(nil)
		assert.Empty(t, empty.Search("chateau", 5))
		assert.Equal(t, 0, empty.Len())
	})

	t.Run("limit larger than catalog returns everything", func(t *testing.T) {
		assert.Len(t, ix.Search("chateau", 50), 5)
	})
}
