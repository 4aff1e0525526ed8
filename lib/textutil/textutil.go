package textutil

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// NormalizeHeader trims surrounding whitespace and drops embedded newlines.
func NormalizeHeader(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\n", "")
	return name
}

func NormalizeHeaders(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeHeader(n)
	}
	return out
}

// ClosestMatch returns the candidate most similar to name along with its
// Jaro-Winkler similarity, comparison is case insensitive.
func ClosestMatch(name string, candidates []string) (string, float64) {
	best := ""
	bestScore := 0.0
	target := strings.ToLower(name)
	for _, c := range candidates {
		score := matchr.JaroWinkler(target, strings.ToLower(c), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}
