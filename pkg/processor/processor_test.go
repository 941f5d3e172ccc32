package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/cuvee/pkg/models"
)

var noopLog = ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

type stubComparer struct {
	failOn string
}

func (s *stubComparer) Compare(ctx context.Context, label string) (*models.MatchResult, error) {
	if label == s.failOn {
		return nil, errors.New("comparison failed")
	}
	return &models.MatchResult{Query: label}, nil
}

func TestCompareBatch(t *testing.T) {
	t.Run("results keep input order", func(t *testing.T) {
		p := NewProcessor(&stubComparer{}, 2, noopLog)
		labels := []string{"alpha", "bravo", "charlie", "delta", "echo"}

		results, err := p.CompareBatch(context.Background(), labels)
		require.NoError(t, err)
		require.Len(t, results, len(labels))
		for i, label := range labels {
			assert.Equal(t, label, results[i].Query)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		p := NewProcessor(&stubComparer{}, 2, noopLog)

		results, err := p.CompareBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("one failure fails the batch", func(t *testing.T) {
		p := NewProcessor(&stubComparer{failOn: "bravo"}, 2, noopLog)

		results, err := p.CompareBatch(context.Background(), []string{"alpha", "bravo", "charlie"})
		assert.Error(t, err)
		assert.Nil(t, results)
	})

	t.Run("invalid worker count falls back to the default", func(t *testing.T) {
		p := NewProcessor(&stubComparer{}, 0, noopLog)
		assert.Equal(t, 4, p.workers)
	})
}
