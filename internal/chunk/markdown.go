package chunk

import (
	"regexp"
	"strings"
)

var (
	headingRE = regexp.MustCompile(`^(#{1,4})\s`)
	fenceRE   = regexp.MustCompile("^(`{3,})")
	hruleRE   = regexp.MustCompile(`^[-_*]{3,}\s*$`)
)

type mdState int

const (
	stateIdle mdState = iota
	stateInCode
)

type headingEntry struct {
	level int
	text  string
}

// Markdown splits text into chunks by heading hierarchy (spec §4.4).
// Fenced code blocks are kept atomic; horizontal rules flush the
// current section without starting a new heading.
func Markdown(text string) []Chunk {
	lines := strings.Split(text, "\n")

	var (
		chunks     []Chunk
		stack      []headingEntry
		body       strings.Builder
		state      = stateIdle
		fenceWidth int
		sawFence   bool
	)

	flush := func() {
		trimmed := strings.TrimSpace(body.String())
		if trimmed == "" {
			body.Reset()
			sawFence = false
			return
		}
		title := stackTitle(stack)
		ct := ContentProse
		if sawFence {
			ct = ContentCode
		}
		chunks = append(chunks, Chunk{Title: title, Body: trimmed, ContentType: ct})
		body.Reset()
		sawFence = false
	}

	for _, line := range lines {
		switch state {
		case stateInCode:
			if m := fenceRE.FindStringSubmatch(line); m != nil && len(m[1]) >= fenceWidth {
				body.WriteString(line)
				body.WriteString("\n")
				state = stateIdle
				continue
			}
			body.WriteString(line)
			body.WriteString("\n")

		case stateIdle:
			switch {
			case headingRE.MatchString(line):
				flush()
				level := len(headingRE.FindStringSubmatch(line)[1])
				headingText := strings.TrimSpace(strings.TrimPrefix(line, strings.Repeat("#", level)))
				for len(stack) > 0 && stack[len(stack)-1].level >= level {
					stack = stack[:len(stack)-1]
				}
				stack = append(stack, headingEntry{level: level, text: headingText})
				body.WriteString(line)
				body.WriteString("\n")

			case fenceRE.MatchString(line):
				m := fenceRE.FindStringSubmatch(line)
				fenceWidth = len(m[1])
				sawFence = true
				state = stateInCode
				body.WriteString(line)
				body.WriteString("\n")

			case hruleRE.MatchString(line):
				flush()

			default:
				body.WriteString(line)
				body.WriteString("\n")
			}
		}
	}
	flush()

	return chunks
}

func stackTitle(stack []headingEntry) string {
	if len(stack) == 0 {
		return "Untitled"
	}
	parts := make([]string, len(stack))
	for i, h := range stack {
		parts[i] = h.text
	}
	return strings.Join(parts, " > ")
}
