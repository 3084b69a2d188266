// Package pipeline wires the chunker, classifier, and merge engine into
// an end-to-end transcript analysis run and renders the results.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glean/internal/chunk"
	"glean/internal/extract"
	"glean/internal/merge"
	"glean/internal/model"
)

// Pipeline orchestrates one transcript analysis run. Chunks are
// processed strictly in order and the merge is a single-threaded
// reduction, so a fixed classifier and fixed inputs give fully
// deterministic output.
type Pipeline struct {
	classifier extract.Classifier
	config     *model.Config
}

// New creates a pipeline around the given classifier
func New(cfg *model.Config, classifier extract.Classifier) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		config:     cfg,
	}
}

// Analyze runs the full chunk/classify/merge pipeline over a transcript.
// It fails fast only when the transcript is empty; malformed classifier
// output degrades to zero contributions for that chunk unless strict
// mode is enabled.
func (p *Pipeline) Analyze(ctx context.Context, transcript string, glossary []model.GlossaryTerm, meetingID string) (*model.Report, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("transcript is empty")
	}

	chunks := chunk.Split(transcript, p.config.Chunking.Size)
	merger := merge.New(glossary, p.config.Terms.MaxTerms)

	var warnings []string
	tokensIn, tokensOut := 0, 0

	for i, c := range chunks {
		result, err := p.classifier.Classify(ctx, c, glossary)
		if err != nil {
			if p.config.Strict {
				return nil, fmt.Errorf("chunk %d: %w", i+1, err)
			}
			warnings = append(warnings, fmt.Sprintf("chunk %d degraded: %v", i+1, err))
		}
		if result == nil {
			continue
		}

		tokensIn += result.TokensIn
		tokensOut += result.TokensOut

		merger.AddExtractions(result.Extractions)
		if !p.config.Glossary.Skip {
			merger.AddTerms(result.Terms)
		}
	}

	extractions := merger.Extractions()
	suggestions := merger.Suggestions()

	byType := make(map[model.ExtractionType]int)
	for i := range extractions {
		extractions[i].ID = fmt.Sprintf("e-%d", i+1)
		byType[extractions[i].Type]++
	}
	for i := range suggestions {
		suggestions[i].ID = fmt.Sprintf("t-%d", i+1)
	}

	report := &model.Report{
		Stats: model.ProcessingStats{
			MeetingID:       meetingID,
			ChunkCount:      len(chunks),
			ExtractionCount: len(extractions),
			ByType:          byType,
			NewTermCount:    len(suggestions),
			Mode:            p.classifier.Mode(),
			Model:           p.modelName(),
			TokensIn:        tokensIn,
			TokensOut:       tokensOut,
			GeneratedAt:     time.Now().UTC(),
		},
		Extractions: extractions,
		Glossary:    glossary,
		Suggested:   suggestions,
		Warnings:    warnings,
		Transcript:  transcript,
	}

	return report, nil
}

func (p *Pipeline) modelName() string {
	if c, ok := p.classifier.(*extract.LLMClassifier); ok {
		return c.ModelName()
	}
	return ""
}
