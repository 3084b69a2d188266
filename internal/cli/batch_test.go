package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"glean/internal/model"
	"glean/internal/pipeline"
	"glean/internal/worker"
)

func sampleResult(path string) *worker.AnalyzeResult {
	return &worker.AnalyzeResult{
		Path: path,
		Report: &model.Report{
			Stats: model.ProcessingStats{
				MeetingID:       worker.MeetingID(path),
				ExtractionCount: 1,
				Mode:            model.ModeRules,
			},
			Extractions: []model.Extraction{
				{ID: "e-1", Type: model.TypeDecision, Content: "We agreed to ship", Confidence: 80},
			},
		},
	}
}

func TestWriteBatchReports_CountsAnalysisFailures(t *testing.T) {
	dir := t.TempDir()
	renderer := pipeline.NewRenderer(model.OutputConfig{})

	results := []*worker.AnalyzeResult{
		sampleResult("meetings/standup.txt"),
		{Path: "meetings/broken.txt", Error: errors.New("transcript is empty")},
	}

	success, failure := writeBatchReports(renderer, results, dir)
	if success != 1 || failure != 1 {
		t.Fatalf("Expected 1 success and 1 failure, got %d/%d", success, failure)
	}

	for _, name := range []string{"standup.md", "standup.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected report %s written: %v", name, err)
		}
	}
}

func TestWriteBatchReports_WriteFailureCountsAsFailure(t *testing.T) {
	// A plain file in place of the output directory makes every report
	// write fail
	dir := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(dir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	renderer := pipeline.NewRenderer(model.OutputConfig{})
	success, failure := writeBatchReports(renderer, []*worker.AnalyzeResult{sampleResult("retro.txt")}, dir)

	if success != 0 {
		t.Errorf("Expected no successes when report writes fail, got %d", success)
	}
	if failure != 1 {
		t.Errorf("Expected write failure counted as failure, got %d", failure)
	}
}

func TestWriteBatchReports_Empty(t *testing.T) {
	renderer := pipeline.NewRenderer(model.OutputConfig{})
	success, failure := writeBatchReports(renderer, nil, t.TempDir())

	if success != 0 || failure != 0 {
		t.Errorf("Expected zero counts for no results, got %d/%d", success, failure)
	}
}
