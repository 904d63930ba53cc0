package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoCandidatesPreferYaegiOverGoBuild(t *testing.T) {
	s, ok := specs[LangGo]
	require.True(t, ok)
	require.Len(t, s.candidates, 2)

	require.Equal(t, "yaegi", s.candidates[0].binary)
	require.False(t, s.candidates[0].compiled)
	require.Equal(t, []string{"run", "script.go"}, s.candidates[0].runArgs("script.go"))

	require.Equal(t, "go", s.candidates[1].binary)
	require.True(t, s.candidates[1].compiled)
	require.Equal(t, []string{"build", "-o", "out", "script.go"}, s.candidates[1].compileArgs("script.go", "out"))
}

func TestJavaScriptCandidatesPreferBunOverNode(t *testing.T) {
	s, ok := specs[LangJavaScript]
	require.True(t, ok)
	require.Len(t, s.candidates, 2)
	require.Equal(t, "bun", s.candidates[0].binary)
	require.Equal(t, "node", s.candidates[1].binary)
}

func TestEverySupportedLanguageHasAtLeastOneCandidate(t *testing.T) {
	for _, lang := range AllLanguages {
		s, ok := specs[lang]
		require.True(t, ok, "missing spec for %s", lang)
		require.NotEmpty(t, s.candidates, "%s has no runtime candidates", lang)
	}
}
