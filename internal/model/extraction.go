package model

// ExtractionType categorizes a classified unit of meeting content
type ExtractionType string

const (
	TypeDecision ExtractionType = "decision" // Something the group settled on
	TypeAction   ExtractionType = "action"   // A follow-up or task someone took on
	TypeOpinion  ExtractionType = "opinion"  // A stated position or belief
	TypeQuestion ExtractionType = "question" // An open or raised question
	TypeTerm     ExtractionType = "term"     // A domain term reference
)

// Types lists every valid extraction type in render order (alphabetical)
var Types = []ExtractionType{TypeAction, TypeDecision, TypeOpinion, TypeQuestion, TypeTerm}

// IsValid reports whether t is one of the five known extraction types
func (t ExtractionType) IsValid() bool {
	switch t {
	case TypeDecision, TypeAction, TypeOpinion, TypeQuestion, TypeTerm:
		return true
	}
	return false
}

// Extraction represents one classified statement pulled from a transcript
type Extraction struct {
	ID            string         `json:"id"`                      // Unique within a run, assigned after merge
	Type          ExtractionType `json:"type"`                    // One of the five kinds
	Content       string         `json:"content"`                 // Normalized, trimmed statement text
	Confidence    int            `json:"confidence"`              // Classifier certainty, 0-100
	Speaker       string         `json:"speaker,omitempty"`       // Attribution, empty when unresolvable
	SourceSnippet string         `json:"sourceSnippet,omitempty"` // Verbatim excerpt, bounded length
	RelatedTerms  []string       `json:"relatedTerms,omitempty"`  // Glossary term names referenced
}

// SnippetCap is the maximum length of a SourceSnippet in characters
const SnippetCap = 200

// ClampConfidence forces a confidence value into [0,100]
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// TruncateSnippet bounds a source snippet to SnippetCap characters
func TruncateSnippet(s string) string {
	runes := []rune(s)
	if len(runes) <= SnippetCap {
		return s
	}
	return string(runes[:SnippetCap])
}
