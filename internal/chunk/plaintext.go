package chunk

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxSectionBytes = 5000
	minSections     = 3
	maxSections     = 200
	defaultOverlap  = 2
	titleMaxRunes   = 80
)

var blankLineSplitRE = regexp.MustCompile(`\n{2,}`)

// PlainText splits text into chunks using the three-tier fallback of
// spec §4.4: blank-line sections when the document is regularly
// paragraphed, a single chunk when it's short, otherwise fixed-size
// overlapping line windows.
func PlainText(text string, linesPerChunk int) []Chunk {
	if sections := blankLineSections(text); sections != nil {
		chunks := make([]Chunk, 0, len(sections))
		for i, section := range sections {
			trimmed := strings.TrimSpace(section)
			if trimmed == "" {
				continue
			}
			chunks = append(chunks, Chunk{
				Title:       sectionTitle(trimmed, i+1),
				Body:        trimmed,
				ContentType: ContentProse,
			})
		}
		return chunks
	}

	lines := strings.Split(text, "\n")
	if len(lines) <= linesPerChunk {
		return []Chunk{{Title: "Output", Body: text, ContentType: ContentProse}}
	}

	return fixedWindows(lines, linesPerChunk)
}

// blankLineSections attempts the blank-line split and returns nil if
// the result doesn't qualify (section count outside [3, 200] or any
// section too large).
func blankLineSections(text string) []string {
	sections := blankLineSplitRE.Split(text, -1)
	if len(sections) < minSections || len(sections) > maxSections {
		return nil
	}
	for _, s := range sections {
		if len(s) >= maxSectionBytes {
			return nil
		}
	}
	return sections
}

func fixedWindows(lines []string, linesPerChunk int) []Chunk {
	overlap := defaultOverlap
	if overlap >= linesPerChunk {
		overlap = linesPerChunk - 1
	}
	step := linesPerChunk - overlap
	if step < 1 {
		step = 1
	}

	var chunks []Chunk
	for start := 0; start < len(lines); start += step {
		end := start + linesPerChunk
		if end > len(lines) {
			end = len(lines)
		}
		window := lines[start:end]
		body := strings.Join(window, "\n")
		trimmed := strings.TrimSpace(body)
		if trimmed != "" {
			chunks = append(chunks, Chunk{
				Title:       windowTitle(window, start+1, end),
				Body:        trimmed,
				ContentType: ContentProse,
			})
		}
		if end == len(lines) {
			break
		}
	}
	return chunks
}

func sectionTitle(section string, n int) string {
	if first := firstNonEmptyLine(section); first != "" {
		return truncateRunes(first, titleMaxRunes)
	}
	return fmt.Sprintf("Section %d", n)
}

// windowTitle uses literally the window's first line (not a scan for
// the first non-blank one, unlike sectionTitle): a window that happens
// to start on a blank line falls back to the line-range label even if
// later lines in the same window have content.
func windowTitle(window []string, startLine, endLine int) string {
	if len(window) > 0 {
		if first := strings.TrimSpace(window[0]); first != "" {
			return truncateRunes(first, titleMaxRunes)
		}
	}
	return fmt.Sprintf("Lines %d–%d", startLine, endLine)
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
