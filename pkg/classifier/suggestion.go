package classifier

import "fmt"

// maxSuggestionDistance is the largest edit distance still worth suggesting.
const maxSuggestionDistance = 3

// suggestName returns a "did you mean" hint for an unknown verbose name, or
// "" when nothing registered is close enough.
func suggestName(unknown string, names []string) string {
	if unknown == "" || len(names) == 0 {
		return ""
	}

	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, name := range names {
		if d := levenshteinDistance(unknown, name); d < bestDist {
			bestDist = d
			best = name
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("Did you mean \"--%s\"?", best)
}

// levenshteinDistance computes the edit distance between two strings, rune
// by rune.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	a, b := []rune(s1), []rune(s2)

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
