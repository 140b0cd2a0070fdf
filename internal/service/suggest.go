package service

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestCategory fuzzy-matches typed input against the known category
// names so a typo like "Fod" still lands on "Food". Returns false when
// nothing is close enough.
func SuggestCategory(input string, known []string) (string, bool) {
	needle := strings.ToUpper(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}

	best := ""
	bestRatio := 1.0
	for _, name := range known {
		candidate := strings.ToUpper(name)
		if candidate == needle {
			return name, true
		}
		if strings.HasPrefix(candidate, needle) {
			return name, true
		}
		dist := levenshtein.ComputeDistance(needle, candidate)
		maxLen := len(needle)
		if len(candidate) > maxLen {
			maxLen = len(candidate)
		}
		ratio := float64(dist) / float64(maxLen)
		if ratio < bestRatio {
			bestRatio = ratio
			best = name
		}
	}
	if bestRatio < 0.4 {
		return best, true
	}
	return "", false
}
