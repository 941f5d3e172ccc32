package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScoredCandidates(t *testing.T) {
	t.Run("plain JSON array", func(t *testing.T) {
		reply := `[{"gid": "gid://shopify/Product/1", "title": "2019 Chateau Test", "score": 8, "reason": "vintage and producer match"}]`

		scored, err := DecodeScoredCandidates(reply)
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Equal(t, "gid://shopify/Product/1", scored[0].GID)
		assert.Equal(t, "2019 Chateau Test", scored[0].Title)
		assert.Equal(t, 8, scored[0].Score)
		assert.Equal(t, "vintage and producer match", scored[0].Reason)
	})

	t.Run("array wrapped in a code fence", func(t *testing.T) {
		reply := "```json\n[{\"gid\": \"1\", \"score\": 6}]\n```"

		scored, err := DecodeScoredCandidates(reply)
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Equal(t, 6, scored[0].Score)
	})

	t.Run("array wrapped in prose", func(t *testing.T) {
		reply := `Here are the scored candidates: [{"gid": "1", "score": 4}] Let me know if you need more.`

		scored, err := DecodeScoredCandidates(reply)
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Equal(t, 4, scored[0].Score)
	})

	t.Run("scores are rounded and clamped", func(t *testing.T) {
		reply := `[
			{"gid": "1", "score": 7.6},
			{"gid": "2", "score": 15},
			{"gid": "3", "score": -3}
		]`

		scored, err := DecodeScoredCandidates(reply)
		require.NoError(t, err)
		require.Len(t, scored, 3)
		assert.Equal(t, 8, scored[0].Score)
		assert.Equal(t, 10, scored[1].Score)
		assert.Equal(t, 0, scored[2].Score)
	})

	t.Run("entries without a gid are dropped", func(t *testing.T) {
		reply := `[{"gid": "", "score": 9}, {"gid": "2", "score": 5}]`

		scored, err := DecodeScoredCandidates(reply)
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Equal(t, "2", scored[0].GID)
	})

	t.Run("reply without an array is an error", func(t *testing.T) {
		_, err := DecodeScoredCandidates("I could not score these candidates.")
		assert.Error(t, err)
	})

	t.Run("malformed array is an error", func(t *testing.T) {
		_, err := DecodeScoredCandidates(`[{"gid": "1", "score": }]`)
		assert.Error(t, err)
	})
}
