package model

import "time"

// Mode identifies which classification strategy produced a run
type Mode string

const (
	ModeRules Mode = "rules" // Deterministic rule-based classifier
	ModeLLM   Mode = "llm"   // External completion model
)

// ProcessingStats is run-level metadata, built once at the end of a run
// and never mutated after construction
type ProcessingStats struct {
	MeetingID       string                 `json:"meeting_id,omitempty"`
	ChunkCount      int                    `json:"chunk_count"`
	ExtractionCount int                    `json:"extraction_count"`
	ByType          map[ExtractionType]int `json:"by_type"`
	NewTermCount    int                    `json:"new_term_count"`
	Mode            Mode                   `json:"mode"`
	Model           string                 `json:"model,omitempty"` // LLM model identifier, empty in rules mode
	TokensIn        int                    `json:"tokens_in"`
	TokensOut       int                    `json:"tokens_out"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// Report is the complete result of analyzing one transcript
type Report struct {
	Stats       ProcessingStats `json:"stats"`
	Extractions []Extraction    `json:"extractions"`
	Glossary    []GlossaryTerm  `json:"glossary"`        // Approved terms, as loaded
	Suggested   []GlossaryTerm  `json:"suggested_terms"` // New term suggestions from this run
	Warnings    []string        `json:"warnings,omitempty"`
	Transcript  string          `json:"-"` // Raw source, rendered only with --include-transcript
}
