package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectCoversEverySupportedLanguage(t *testing.T) {
	d := Detect()
	runtimes := d.Runtimes()
	for _, lang := range AllLanguages {
		rt, ok := runtimes[lang]
		require.True(t, ok, "missing detection entry for %s", lang)
		require.Equal(t, lang, rt.Language)
	}
}

func TestLookupReflectsAvailability(t *testing.T) {
	d := Detect()
	for _, lang := range AllLanguages {
		rt, available := d.Lookup(lang)
		require.Equal(t, rt.Available, available)
		if available {
			require.NotEmpty(t, rt.CommandTemplate)
		}
	}
}

func TestDetectIsIdempotent(t *testing.T) {
	r1 := Detect().Runtimes()
	r2 := Detect().Runtimes()
	require.Equal(t, len(r1), len(r2))
	for lang, a := range r1 {
		b, ok := r2[lang]
		require.True(t, ok, "missing detection entry for %s", lang)
		// CompileArgs is a func value, which require.Equal never reports
		// equal unless nil, so it is compared by what it returns.
		require.Equal(t, a.CompileArgs == nil, b.CompileArgs == nil)
		if a.CompileArgs != nil {
			require.Equal(t, a.CompileArgs("main.src", "out"), b.CompileArgs("main.src", "out"))
		}
		a.CompileArgs, b.CompileArgs = nil, nil
		require.Equal(t, a, b)
	}
}

func TestLookupUnknownLanguage(t *testing.T) {
	d := Detect()
	_, available := d.Lookup(Language("cobol"))
	require.False(t, available)
}
