// Package glossary loads the persisted glossary file. The glossary is
// owned by an external curator; this package treats it as read-only
// input and degrades to an empty glossary when the file is missing or
// malformed.
package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"glean/internal/model"
)

// DefaultPath is the glossary location relative to the working directory
const DefaultPath = "data/glossary.json"

// Load reads a JSON array of glossary terms from path. A missing or
// unreadable file yields an empty glossary and no error; a parse
// failure is reported so strict mode can surface it, alongside the
// empty fallback.
func Load(path string) ([]model.GlossaryTerm, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var terms []model.GlossaryTerm
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("parse glossary %s: %w", path, err)
	}

	return clean(terms), nil
}

// clean drops entries whose term is empty after trimming and ensures
// the frequency invariant (>= 1) holds for loaded data
func clean(terms []model.GlossaryTerm) []model.GlossaryTerm {
	var out []model.GlossaryTerm
	for _, t := range terms {
		t.Term = strings.TrimSpace(t.Term)
		if t.Term == "" {
			continue
		}
		if t.Frequency < 1 {
			t.Frequency = 1
		}
		out = append(out, t)
	}
	return out
}

// KnownLabels collects every term label and alias from the glossary,
// seeding the merge engine's known-label set
func KnownLabels(terms []model.GlossaryTerm) []string {
	var labels []string
	for _, t := range terms {
		labels = append(labels, t.Labels()...)
	}
	return labels
}
