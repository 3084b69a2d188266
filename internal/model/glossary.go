package model

// GlossaryTerm is a named domain concept tracked across meetings.
// Approved terms come from the persisted glossary file and are read-only
// input; suggested terms are created by the pipeline and live for one run
// unless the caller persists them.
type GlossaryTerm struct {
	ID             string   `json:"id,omitempty"`
	Term           string   `json:"term"`                     // Canonical display label
	Definition     string   `json:"definition,omitempty"`     // Free text, inferred or curated
	Aliases        []string `json:"aliases,omitempty"`        // Alternate labels treated as equivalent
	FirstMentioned string   `json:"firstMentioned,omitempty"` // Meeting/run where it first appeared
	Frequency      int      `json:"frequency"`                // Observed mention count, >= 1
	Approved       bool     `json:"approved"`                 // Human-curated vs machine-suggested
}

// Labels returns the term's canonical label plus all aliases
func (g GlossaryTerm) Labels() []string {
	labels := make([]string, 0, 1+len(g.Aliases))
	labels = append(labels, g.Term)
	labels = append(labels, g.Aliases...)
	return labels
}
