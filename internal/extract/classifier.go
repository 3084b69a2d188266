// Package extract turns transcript chunks into typed extractions and
// glossary term candidates. Two interchangeable strategies satisfy the
// Classifier contract: a deterministic rule engine and an LLM-backed
// classifier. The pipeline is polymorphic over whichever is configured.
package extract

import (
	"context"

	"glean/internal/model"
)

// ChunkResult holds one chunk's contribution before cross-chunk merging.
// Extractions carry no IDs yet; the pipeline assigns them after merge.
type ChunkResult struct {
	Extractions []model.Extraction
	Terms       []model.GlossaryTerm
	TokensIn    int
	TokensOut   int
}

// Classifier produces extraction and term candidates for one chunk.
// Implementations must honor the Extraction invariants: confidence in
// [0,100], snippet bounded, type one of the five kinds.
type Classifier interface {
	Classify(ctx context.Context, chunk string, glossary []model.GlossaryTerm) (*ChunkResult, error)

	// Mode identifies the strategy for run stats
	Mode() model.Mode
}
