package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"glean/internal/model"
)

// mockAnalyzer implements Analyzer
type mockAnalyzer struct {
	shouldError bool
}

func (m *mockAnalyzer) Analyze(ctx context.Context, transcript string, glossary []model.GlossaryTerm, meetingID string) (*model.Report, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.shouldError {
		return nil, errors.New("analyze error")
	}
	return &model.Report{
		Stats: model.ProcessingStats{MeetingID: meetingID},
	}, nil
}

func writeTranscript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTranscript(t, dir, "standup.txt", "Alice: We agreed to ship."),
		writeTranscript(t, dir, "retro.txt", "Bob: I need to follow up."),
		writeTranscript(t, dir, "planning.txt", "Should we wait?"),
	}

	processor := NewBatchProcessor(&mockAnalyzer{}, nil, 2)
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
			continue
		}
		if res.Report == nil {
			t.Errorf("expected report for %s", res.Path)
		}
	}
}

func TestBatchProcessor_ProcessPaths_AnalyzerError(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "standup.txt", "Alice: hello")

	processor := NewBatchProcessor(&mockAnalyzer{shouldError: true}, nil, 2)
	results := processor.ProcessPaths(context.Background(), []string{path})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessPaths_MissingFile(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, nil, 2)
	results := processor.ProcessPaths(context.Background(), []string{"no_such_transcript.txt"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected load error for missing file")
	}
}

func TestBatchProcessor_ProcessPaths_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, nil, 2)

	results := processor.ProcessPaths(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestCollectPaths_Directory(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "b.txt", "x")
	writeTranscript(t, dir, "a.md", "x")
	writeTranscript(t, dir, "c.html", "x")
	writeTranscript(t, dir, "notes.pdf", "x") // skipped extension
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := CollectPaths(dir)
	if err != nil {
		t.Fatalf("CollectPaths failed: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.html"),
	}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d: %v", len(expected), len(paths), paths)
	}
	for i, p := range paths {
		if p != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, p)
		}
	}
}

func TestCollectPaths_ListingFile(t *testing.T) {
	content := `meetings/standup.txt
# comment
meetings/retro.txt

meetings/standup.txt`

	tmpfile, err := os.CreateTemp("", "listing")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	paths, err := CollectPaths(tmpfile.Name())
	if err != nil {
		t.Fatalf("CollectPaths failed: %v", err)
	}

	expected := []string{"meetings/standup.txt", "meetings/retro.txt"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths after dedup, got %d: %v", len(expected), len(paths), paths)
	}
	for i, p := range paths {
		if p != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, p)
		}
	}
}

func TestCollectPaths_NonExistent(t *testing.T) {
	if _, err := CollectPaths("no_such_input"); err == nil {
		t.Error("expected error for non-existent input, got nil")
	}
}

func TestAnalyzeResult_GetError(t *testing.T) {
	r1 := &AnalyzeResult{Path: "a.txt", Error: nil}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("analyze failed")
	r2 := &AnalyzeResult{Path: "a.txt", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestMeetingID(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"meetings/2026-03-01-standup.txt", "2026-03-01-standup"},
		{"retro.html", "retro"},
		{"/abs/path/notes.md", "notes"},
	}

	for _, tt := range tests {
		if got := MeetingID(tt.path); got != tt.expected {
			t.Errorf("MeetingID(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}
