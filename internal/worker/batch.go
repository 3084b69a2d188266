package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"glean/internal/model"
	"glean/internal/pipeline"
)

// Analyzer defines the interface for analyzing one transcript
type Analyzer interface {
	Analyze(ctx context.Context, transcript string, glossary []model.GlossaryTerm, meetingID string) (*model.Report, error)
}

// AnalyzeJob represents one transcript file analysis job
type AnalyzeJob struct {
	Path     string
	Glossary []model.GlossaryTerm
	Analyzer Analyzer
}

// Execute loads the transcript and runs the analyzer over it
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	transcript, err := pipeline.LoadTranscript(j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}

	meetingID := MeetingID(j.Path)
	report, err := j.Analyzer.Analyze(ctx, transcript, j.Glossary, meetingID)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}

	return &AnalyzeResult{Path: j.Path, Report: report}
}

// AnalyzeResult represents the result of one transcript analysis
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple transcript files concurrently.
// Classification fans out per file; the merge inside each file remains
// a single-threaded reduction, so per-file results stay deterministic.
type BatchProcessor struct {
	analyzer    Analyzer
	glossary    []model.GlossaryTerm
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, glossary []model.GlossaryTerm, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		glossary:    glossary,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes multiple transcript files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Glossary: b.glossary,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// CollectPaths resolves a batch input argument: a directory yields
// every transcript file in it, anything else is read as a listing file
// (one path per line)
func CollectPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return collectTranscripts(input)
	}
	return readPathsFromFile(input)
}

// transcriptExts are the file extensions picked up from a directory
var transcriptExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

func collectTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if transcriptExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// readPathsFromFile reads transcript paths from a listing file (one per
// line), skipping blanks and comments and deduplicating
func readPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

// MeetingID derives a meeting identifier from a transcript path
func MeetingID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
