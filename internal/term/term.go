// Package term decides when two glossary term labels denote the same
// domain concept. Every deduplication decision involving term names goes
// through Equivalent, so the relation must be symmetric and reflexive
// for non-empty labels.
package term

import (
	"strings"
	"unicode"
)

// maxEditDistance is the edit-distance threshold for near-match equivalence
const maxEditDistance = 2

// Normalize lowercases a label and strips all non-alphanumeric characters
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Equivalent reports whether a and b denote the same domain term.
// Labels that normalize to the empty string are never equivalent to
// anything, including each other, so all-punctuation labels cannot
// collapse unrelated suggestions.
func Equivalent(a, b string) bool {
	na := Normalize(a)
	nb := Normalize(b)

	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return editDistance(na, nb) <= maxEditDistance
}

// EquivalentToAny reports whether label is equivalent to any of labels
func EquivalentToAny(label string, labels []string) bool {
	for _, l := range labels {
		if Equivalent(label, l) {
			return true
		}
	}
	return false
}

// editDistance computes the Levenshtein distance between two strings
// with unit-cost insertions, deletions, and substitutions
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
