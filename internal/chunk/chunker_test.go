package chunk

import (
	"strings"
	"testing"
)

func TestSplit_Lossless(t *testing.T) {
	transcripts := []string{
		"single line",
		"line one\nline two\nline three",
		"Alice: hello\n\nBob: hi there\n",
		"trailing newline\n",
		"\nleading newline",
		"\n\n\n",
		strings.Repeat("some moderately long transcript line here\n", 200),
	}

	for _, text := range transcripts {
		for _, size := range []int{1, 10, 50, 3000} {
			chunks := Split(text, size)
			joined := strings.Join(chunks, "\n")
			if joined != text {
				t.Errorf("Split(size=%d) lost content: got %d chunks, joined %q != source %q",
					size, len(chunks), truncate(joined), truncate(text))
			}
		}
	}
}

func TestSplit_Bound(t *testing.T) {
	text := strings.Repeat("twelve chars\n", 100)
	size := 50

	for i, c := range Split(text, size) {
		if len(c) > size {
			t.Errorf("Chunk %d exceeds budget: %d > %d", i, len(c), size)
		}
	}
}

func TestSplit_OversizedLinePassesThrough(t *testing.T) {
	long := strings.Repeat("x", 500)
	text := "short\n" + long + "\nshort again"

	chunks := Split(text, 100)

	found := false
	for _, c := range chunks {
		if c == long {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected oversized line to become its own chunk, got %d chunks", len(chunks))
	}

	if joined := strings.Join(chunks, "\n"); joined != text {
		t.Error("Oversized line handling broke losslessness")
	}
}

func TestSplit_NeverBreaksLines(t *testing.T) {
	text := "alpha beta\ngamma delta\nepsilon zeta\n"

	for _, c := range Split(text, 12) {
		for _, line := range strings.Split(c, "\n") {
			if line != "" && !strings.Contains(text, line) {
				t.Errorf("Chunk contains partial line %q", line)
			}
		}
	}
}

func TestSplit_Empty(t *testing.T) {
	if chunks := Split("", 100); chunks != nil {
		t.Errorf("Expected nil chunks for empty input, got %v", chunks)
	}
}

func TestSplit_DefaultSize(t *testing.T) {
	text := strings.Repeat("line\n", 10)
	if got := Split(text, 0); len(got) != 1 {
		t.Errorf("Expected one chunk under default budget, got %d", len(got))
	}
}

func truncate(s string) string {
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
