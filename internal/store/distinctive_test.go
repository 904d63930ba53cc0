package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 5: distinctive terms. A single plain-text source split on
// blank lines into 23 chunks (10 "section" lines, 10 copies of a
// stop-word-heavy sentence, 3 retry_backoff lines), so retry_backoff
// appears in exactly 3 chunks and the stop-words in 10.
func TestDistinctiveTermsScenario(t *testing.T) {
	s := newTestStore(t)

	var full string
	for i := 0; i < 10; i++ {
		full += "section\n\nthe quick brown fox jumps over the lazy dog today\n\n"
		if i < 3 {
			full += "retry_backoff handles transient failures\n\n"
		}
	}
	res, err := s.Index(full, "", "combined.txt")
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.TotalChunks, 3)

	terms, err := s.DistinctiveTerms(res.SourceID, 40)
	require.NoError(t, err)

	require.Contains(t, terms, "retry_backoff")
	for _, stop := range []string{"the", "over"} {
		require.NotContains(t, terms, stop)
	}
}

func TestDistinctiveTermsTooFewChunks(t *testing.T) {
	s := newTestStore(t)
	res, err := s.Index("one short line", "", "tiny.txt")
	require.NoError(t, err)

	terms, err := s.DistinctiveTerms(res.SourceID, 40)
	require.NoError(t, err)
	require.Empty(t, terms)
}

func TestDistinctiveTermsUnknownSource(t *testing.T) {
	s := newTestStore(t)
	terms, err := s.DistinctiveTerms(999999, 40)
	require.NoError(t, err)
	require.Empty(t, terms)
}
