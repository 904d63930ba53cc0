package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainTextBlankLineSplitting(t *testing.T) {
	text := "First section\nmore text\n\nSecond section\nmore\n\nThird section\nmore still\n"
	chunks := PlainText(text, 50)

	require.Len(t, chunks, 3)
	require.Equal(t, "First section", chunks[0].Title)
	require.Equal(t, "Second section", chunks[1].Title)
	require.Equal(t, "Third section", chunks[2].Title)
	for _, c := range chunks {
		require.Equal(t, ContentProse, c.ContentType)
	}
}

func TestPlainTextBlankLineSplitRejectsOutOfRangeSectionCount(t *testing.T) {
	// Only two sections: below the minimum of 3, so blank-line
	// splitting is not used and the short-text single-chunk path
	// applies instead.
	text := "one\n\ntwo\n"
	chunks := PlainText(text, 50)

	require.Len(t, chunks, 1)
	require.Equal(t, "Output", chunks[0].Title)
}

func TestPlainTextShortTextSingleChunk(t *testing.T) {
	text := "line1\nline2\nline3\n"
	chunks := PlainText(text, 10)

	require.Len(t, chunks, 1)
	require.Equal(t, "Output", chunks[0].Title)
	require.Equal(t, text, chunks[0].Body)
}

func TestPlainTextFixedWindowsWithOverlap(t *testing.T) {
	var lines []string
	for i := 1; i <= 20; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	text := strings.Join(lines, "\n")

	chunks := PlainText(text, 5)
	require.NotEmpty(t, chunks)

	// step = 5 - 2 = 3, so windows start at 0,3,6,...; verify overlap by
	// checking consecutive windows share lines.
	require.Contains(t, chunks[0].Body, "line 1")
	require.Contains(t, chunks[0].Body, "line 5")
	require.Contains(t, chunks[1].Body, "line 4")
}

func TestPlainTextWindowTitleFallsBackToLineRange(t *testing.T) {
	// The first window starts on a blank line even though the window
	// has later content, so its title must fall back to a line-range
	// label rather than use a later non-blank line.
	text := "\ncontent1\ncontent2"
	chunks := PlainText(text, 2)

	require.NotEmpty(t, chunks)
	require.Contains(t, chunks[0].Title, "Lines")
}

func TestPlainTextSectionTitleTruncatesLongFirstLine(t *testing.T) {
	longLine := strings.Repeat("x", 200)
	text := longLine + "\nbody\n\nsecond\nbody\n\nthird\nbody\n"
	chunks := PlainText(text, 50)

	require.Len(t, chunks[0].Title, 80)
}
