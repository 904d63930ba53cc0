package store

import (
	"github.com/hbollon/go-edlib"
)

// editBudget returns the length-dependent edit budget of spec §4.6 tier
// 3: words of length ≤4 tolerate 1 edit, ≤12 tolerate 2, longer ones 3.
func editBudget(wordLen int) int {
	switch {
	case wordLen <= 4:
		return 1
	case wordLen <= 12:
		return 2
	default:
		return 3
	}
}

// fuzzyCorrect finds the closest vocabulary entry to word within its
// length-dependent edit budget, excluding word itself. Returns the
// corrected word and true, or word unchanged and false if nothing in
// budget improves on it.
func fuzzyCorrect(word string, vocabulary []string) (string, bool) {
	budget := editBudget(len([]rune(word)))

	best := ""
	bestDist := budget + 1
	for _, candidate := range vocabulary {
		if candidate == word {
			continue
		}
		dist := edlib.LevenshteinDistance(word, candidate)
		if dist <= budget && dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	if best == "" {
		return word, false
	}
	return best, true
}
