package extract

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"glean/internal/model"
	"glean/internal/term"
)

// RuleClassifier is the deterministic, dependency-free strategy. Keyword
// tables, confidence levels, and the speaker/term heuristics are plain
// struct data so callers can tune them.
type RuleClassifier struct {
	DecisionWords []string
	ActionWords   []string
	OpinionWords  []string

	QuestionConfidence int
	DecisionConfidence int
	ActionConfidence   int
	OpinionConfidence  int

	// MaxTerms caps term suggestions per chunk, 0 = unlimited
	MaxTerms int

	// MeetingID stamps firstMentioned on suggested terms
	MeetingID string

	// Stopwords excludes common sentence-initial capitalized words from
	// term candidacy, keyed by normalized form
	Stopwords map[string]bool

	speakerRe   *regexp.Regexp
	candidateRe *regexp.Regexp
}

// NewRuleClassifier creates a rule classifier with the default keyword
// tables and confidence levels
func NewRuleClassifier(maxTerms int, meetingID string) *RuleClassifier {
	return &RuleClassifier{
		DecisionWords: []string{"decision", "decide", "agreed", "agreement", "approve"},
		ActionWords:   []string{"action item", "follow up", "will", "need to", "let's", "assign", "task"},
		OpinionWords:  []string{"i think", "i believe", "feels like", "i guess", "should"},

		QuestionConfidence: 90,
		DecisionConfidence: 80,
		ActionConfidence:   78,
		OpinionConfidence:  70,

		MaxTerms:  maxTerms,
		MeetingID: meetingID,
		Stopwords: defaultStopwords(),

		// A short label of letters/spaces followed by a colon
		speakerRe: regexp.MustCompile(`^([A-Za-z][A-Za-z ]{0,30}):\s+(.*)$`),
		// One or two consecutive capitalized words
		candidateRe: regexp.MustCompile(`\b[A-Z][A-Za-z0-9]+(?: [A-Z][A-Za-z0-9]+)?\b`),
	}
}

func defaultStopwords() map[string]bool {
	words := []string{
		"the", "this", "that", "these", "those", "there", "then",
		"and", "but", "for", "not", "yes", "okay",
		"what", "when", "where", "which", "who", "why", "how",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Mode identifies the strategy for run stats
func (c *RuleClassifier) Mode() model.Mode {
	return model.ModeRules
}

// Classify splits the chunk into sentence-like units, classifies each by
// pattern, and scans the chunk for new term candidates. A unit matching
// no pattern yields no extraction.
func (c *RuleClassifier) Classify(_ context.Context, chunk string, glossary []model.GlossaryTerm) (*ChunkResult, error) {
	units := splitUnits(chunk)

	result := &ChunkResult{}
	for _, unit := range units {
		if ext, ok := c.classifyUnit(unit, glossary); ok {
			result.Extractions = append(result.Extractions, ext)
		}
	}

	result.Terms = c.suggestTerms(chunk, units, glossary)

	return result, nil
}

// classifyUnit classifies one sentence-like unit, first match wins:
// question, decision, action, opinion
func (c *RuleClassifier) classifyUnit(unit string, glossary []model.GlossaryTerm) (model.Extraction, bool) {
	speaker, content := c.stripSpeaker(unit)
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Extraction{}, false
	}

	lower := strings.ToLower(content)

	var extType model.ExtractionType
	var confidence int

	switch {
	case strings.HasSuffix(content, "?"):
		extType, confidence = model.TypeQuestion, c.QuestionConfidence
	case containsAny(lower, c.DecisionWords):
		extType, confidence = model.TypeDecision, c.DecisionConfidence
	case containsAny(lower, c.ActionWords):
		extType, confidence = model.TypeAction, c.ActionConfidence
	case containsAny(lower, c.OpinionWords):
		extType, confidence = model.TypeOpinion, c.OpinionConfidence
	default:
		// No pattern matched, no extraction
		return model.Extraction{}, false
	}

	return model.Extraction{
		Type:          extType,
		Content:       content,
		Confidence:    model.ClampConfidence(confidence),
		Speaker:       speaker,
		SourceSnippet: model.TruncateSnippet(unit),
		RelatedTerms:  relatedTerms(lower, glossary),
	}, true
}

// stripSpeaker removes a leading "Speaker: " label when present
func (c *RuleClassifier) stripSpeaker(unit string) (speaker, content string) {
	if m := c.speakerRe.FindStringSubmatch(unit); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	return "", unit
}

// relatedTerms returns canonical names of glossary terms whose label
// appears as a substring of the lowercased content
func relatedTerms(lowerContent string, glossary []model.GlossaryTerm) []string {
	var related []string
	for _, g := range glossary {
		for _, label := range g.Labels() {
			if label == "" {
				continue
			}
			if strings.Contains(lowerContent, strings.ToLower(label)) {
				related = append(related, g.Term)
				break
			}
		}
	}
	return related
}

// termCandidate accumulates one equivalence class of capitalized tokens
type termCandidate struct {
	label string // First-seen spelling
	count int
}

// suggestTerms scans the chunk for capitalized tokens not already known
// to the glossary and returns the most frequent as suggestions
func (c *RuleClassifier) suggestTerms(chunk string, units []string, glossary []model.GlossaryTerm) []model.GlossaryTerm {
	known := make([]string, 0, len(glossary)*2)
	for _, g := range glossary {
		known = append(known, g.Labels()...)
	}

	var candidates []*termCandidate
	for _, token := range c.candidateRe.FindAllString(chunk, -1) {
		if len(token) < 3 {
			continue
		}
		if c.Stopwords[term.Normalize(firstWord(token))] {
			continue
		}
		if term.EquivalentToAny(token, known) {
			continue
		}

		matched := false
		for _, cand := range candidates {
			if term.Equivalent(token, cand.label) {
				cand.count++
				matched = true
				break
			}
		}
		if !matched {
			candidates = append(candidates, &termCandidate{label: token, count: 1})
		}
	}

	// Highest frequency first, ties keep first-seen order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].count > candidates[j].count
	})
	if c.MaxTerms > 0 && len(candidates) > c.MaxTerms {
		candidates = candidates[:c.MaxTerms]
	}

	var terms []model.GlossaryTerm
	for _, cand := range candidates {
		terms = append(terms, model.GlossaryTerm{
			Term:           cand.label,
			Definition:     definitionFor(cand.label, units),
			FirstMentioned: c.MeetingID,
			Frequency:      cand.count,
			Approved:       false,
		})
	}
	return terms
}

// definitionFor derives a placeholder definition from the first unit
// mentioning the token
func definitionFor(token string, units []string) string {
	for _, u := range units {
		if strings.Contains(u, token) {
			return fmt.Sprintf("Mentioned in: %q", model.TruncateSnippet(u))
		}
	}
	return ""
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// splitUnits splits a chunk into sentence-like units on blank lines or
// sentence-ending punctuation followed by whitespace
func splitUnits(chunk string) []string {
	var units []string

	for _, block := range blankLineRe.Split(chunk, -1) {
		block = strings.ReplaceAll(block, "\n", " ")

		var current strings.Builder
		runes := []rune(block)
		for i, r := range runes {
			current.WriteRune(r)
			if r == '.' || r == '!' || r == '?' {
				if i+1 < len(runes) && isSpace(runes[i+1]) {
					appendUnit(&units, current.String())
					current.Reset()
				}
			}
		}
		appendUnit(&units, current.String())
	}

	return units
}

var blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)

func appendUnit(units *[]string, s string) {
	s = strings.TrimSpace(s)
	if s != "" {
		*units = append(*units, s)
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
