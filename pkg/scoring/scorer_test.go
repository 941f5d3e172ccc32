package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/cuvee/pkg/models"
)

func TestScoreCandidates(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name      string
		query     string
		title     string
		wantScore int
	}{
		{
			name:      "identical full label matches four fields",
			query:     "2019 Chateau Test Pauillac Grand Cru Classe",
			title:     "2019 Chateau Test Pauillac Grand Cru Classe",
			wantScore: 8,
		},
		{
			name:      "vintage mismatch costs five points",
			query:     "2019 Chateau Test Pauillac Grand Cru Classe",
			title:     "2007 Chateau Test Pauillac Grand Cru Classe",
			wantScore: 1,
		},
		{
			name:      "candidate without vintage is neutral",
			query:     "2021 Domaine Example Chardonnay",
			title:     "Domaine Example Chardonnay",
			wantScore: 4,
		},
		{
			name:      "two digit vintage matches its four digit year",
			query:     "21 Domaine Example Chardonnay",
			title:     "2021 Domaine Example Chardonnay",
			wantScore: 6,
		},
		{
			name:      "old two digit vintage resolves to the previous century",
			query:     "78 Domaine Example Chardonnay",
			title:     "1978 Domaine Example Chardonnay",
			wantScore: 6,
		},
		{
			name:      "single character typo still matches",
			query:     "2019 Chateaux Test Pauillac",
			title:     "2019 Chateau Test Pauillac",
			wantScore: 6,
		},
		{
			name:      "nothing in common clamps at zero",
			query:     "2019 Chateau Test Pauillac",
			title:     "2007 Bodega Otra Rioja",
			wantScore: 0,
		},
		{
			name:      "diacritics do not block matches",
			query:     "2019 Château Test Pauillac Grand Cru Classé",
			title:     "2019 Chateau Test Pauillac Grand Cru Classe",
			wantScore: 8,
		},
		{
			name:      "many matched fields clamp at ten",
			query:     "2019 Chateau Test Pauillac Grand Cru Classe Taillepieds Merlot Magnum",
			title:     "2019 Chateau Test Pauillac Grand Cru Classe Taillepieds Merlot Magnum",
			wantScore: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored, err := s.ScoreCandidates(context.Background(), tt.query, []models.Candidate{
				{GID: "gid://shopify/Product/1", Title: tt.title, Score: 1.0},
			})
			require.NoError(t, err)
			require.Len(t, scored, 1)
			assert.Equal(t, tt.wantScore, scored[0].Score, "reason: %s", scored[0].Reason)
		})
	}
}

func TestScoreReasons(t *testing.T) {
	s := NewScorer()

	t.Run("lists matched fields", func(t *testing.T) {
		scored, err := s.ScoreCandidates(context.Background(), "2019 Chateau Test Pauillac", []models.Candidate{
			{GID: "1", Title: "2019 Chateau Test Pauillac"},
		})
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Contains(t, scored[0].Reason, FieldVintage)
		assert.Contains(t, scored[0].Reason, FieldProducer)
		assert.Contains(t, scored[0].Reason, FieldAppellation)
	})

	t.Run("notes the vintage penalty", func(t *testing.T) {
		scored, err := s.ScoreCandidates(context.Background(), "2019 Chateau Test Pauillac", []models.Candidate{
			{GID: "1", Title: "2007 Chateau Test Pauillac"},
		})
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Contains(t, scored[0].Reason, "vintage mismatch")
	})

	t.Run("says when nothing matched", func(t *testing.T) {
		scored, err := s.ScoreCandidates(context.Background(), "Domaine Example", []models.Candidate{
			{GID: "1", Title: "Bodega Otra"},
		})
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Contains(t, scored[0].Reason, "no rubric fields matched")
	})
}
