// Package merge collapses per-chunk extraction and term lists into one
// run-level result set. The pass is a single left-to-right reduction,
// but the equivalence checks and commutative frequency accumulation
// make the final set independent of chunk order; only tie-breaks are
// pinned to first-encountered.
package merge

import (
	"sort"
	"strings"

	"glean/internal/model"
	"glean/internal/term"
)

// contentKeyLen bounds the content portion of the extraction dedup key
const contentKeyLen = 50

// Merger accumulates chunk results into deduplicated run-level output
type Merger struct {
	extractions []model.Extraction
	extIndex    map[extractionKey]int

	suggestions []model.GlossaryTerm
	knownLabels []string

	maxTerms int
}

type extractionKey struct {
	kind    model.ExtractionType
	content string
}

// New creates a merger seeded with every approved glossary term's label
// and aliases. maxTerms caps final suggestions, 0 = unlimited.
func New(glossary []model.GlossaryTerm, maxTerms int) *Merger {
	m := &Merger{
		extIndex: make(map[extractionKey]int),
		maxTerms: maxTerms,
	}
	for _, g := range glossary {
		m.knownLabels = append(m.knownLabels, g.Labels()...)
	}
	return m
}

// AddExtractions folds a chunk's extractions into the run set. Among
// extractions sharing a dedup key, the highest confidence wins; ties
// keep the first encountered. Losers are dropped, never mutated.
func (m *Merger) AddExtractions(extractions []model.Extraction) {
	for _, e := range extractions {
		key := keyFor(e)

		if i, exists := m.extIndex[key]; exists {
			if e.Confidence > m.extractions[i].Confidence {
				m.extractions[i] = e
			}
			continue
		}

		m.extIndex[key] = len(m.extractions)
		m.extractions = append(m.extractions, e)
	}
}

// AddTerms folds a chunk's term suggestions into the run set. A term
// equivalent to a known glossary label is discarded as already known; a
// term equivalent to an accepted suggestion merges by summing
// frequency; anything else becomes a new suggestion.
func (m *Merger) AddTerms(terms []model.GlossaryTerm) {
	for _, t := range terms {
		if term.Normalize(t.Term) == "" {
			continue
		}
		if t.Frequency < 1 {
			t.Frequency = 1
		}

		if term.EquivalentToAny(t.Term, m.knownLabels) {
			continue
		}

		merged := false
		for i := range m.suggestions {
			if term.EquivalentToAny(t.Term, m.suggestions[i].Labels()) {
				m.suggestions[i].Frequency += t.Frequency
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		m.suggestions = append(m.suggestions, t)
		m.knownLabels = append(m.knownLabels, t.Labels()...)
	}
}

// Extractions returns the deduplicated extractions sorted by descending
// confidence, ties in first-encountered order
func (m *Merger) Extractions() []model.Extraction {
	out := make([]model.Extraction, len(m.extractions))
	copy(out, m.extractions)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// Suggestions returns accepted term suggestions sorted by descending
// frequency, ties in first-encountered order, truncated to maxTerms
func (m *Merger) Suggestions() []model.GlossaryTerm {
	out := make([]model.GlossaryTerm, len(m.suggestions))
	copy(out, m.suggestions)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})

	if m.maxTerms > 0 && len(out) > m.maxTerms {
		out = out[:m.maxTerms]
	}
	return out
}

func keyFor(e model.Extraction) extractionKey {
	content := strings.ToLower(e.Content)
	if runes := []rune(content); len(runes) > contentKeyLen {
		content = string(runes[:contentKeyLen])
	}
	return extractionKey{kind: e.Type, content: content}
}
