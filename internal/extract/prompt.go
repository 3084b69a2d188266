package extract

import (
	"fmt"
	"strings"

	"glean/internal/model"
)

const systemPrompt = "You are a meeting analyst. You extract structured facts from transcripts and respond with JSON only."

// extractionPrompt asks the model for a JSON array of extraction objects
func extractionPrompt(chunk string, glossary []model.GlossaryTerm) string {
	return fmt.Sprintf(`Analyze this meeting transcript chunk and extract every decision, action item, opinion, question, and domain term reference.

Return ONLY a JSON array of objects with these fields:
- "type": one of "decision", "action", "opinion", "question", "term"
- "content": the extracted statement, trimmed
- "confidence": integer 0-100, how certain you are of the type; include only items with confidence > 60
- "speaker": who said it, or omit when unknown
- "sourceSnippet": verbatim excerpt from the chunk (max 200 characters)
- "relatedTerms": glossary term names referenced by the statement

Known glossary terms:
%s

Transcript chunk:
---
%s
---`, formatGlossary(glossary), chunk)
}

// termPrompt asks the model for a JSON array of new glossary candidates
func termPrompt(chunk string, glossary []model.GlossaryTerm, maxTerms int) string {
	limit := ""
	if maxTerms > 0 {
		limit = fmt.Sprintf(" Return at most %d terms, the most significant first.", maxTerms)
	}

	return fmt.Sprintf(`Identify domain-specific terms, product names, or jargon in this meeting transcript chunk that are NOT already in the glossary below.%s

Return ONLY a JSON array of objects with these fields:
- "term": the canonical term
- "definition": a one-sentence definition inferred from context
- "aliases": alternate spellings seen in the chunk, or an empty array

Existing glossary (do not repeat these):
%s

Transcript chunk:
---
%s
---`, limit, formatGlossary(glossary), chunk)
}

// formatGlossary renders glossary context for prompts, bounded to avoid
// token bloat on large glossaries
func formatGlossary(glossary []model.GlossaryTerm) string {
	if len(glossary) == 0 {
		return "(empty glossary)"
	}

	var b strings.Builder
	for i, g := range glossary {
		if i >= 50 {
			fmt.Fprintf(&b, "... and %d more terms\n", len(glossary)-50)
			break
		}
		fmt.Fprintf(&b, "- %s", g.Term)
		if len(g.Aliases) > 0 {
			fmt.Fprintf(&b, " (aka %s)", strings.Join(g.Aliases, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
