// Package chunk splits transcript text into bounded-size pieces for
// classification. Chunks break only on line boundaries and joining them
// back with newlines reproduces the source exactly.
package chunk

import "strings"

// DefaultSize is the default chunk character budget
const DefaultSize = 3000

// Split partitions text into chunks of at most size characters each,
// never breaking inside a line. A single line longer than the budget
// becomes an oversized chunk by itself. size <= 0 falls back to
// DefaultSize.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultSize
	}
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")

	var chunks []string
	var current []string
	currentLen := 0

	for _, line := range lines {
		if len(current) > 0 && currentLen+1+len(line) > size {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
			currentLen = 0
		}
		if len(current) > 0 {
			currentLen++ // Joining newline
		}
		current = append(current, line)
		currentLen += len(line)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}

	return chunks
}
