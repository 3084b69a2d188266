package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// LoadTranscript reads a transcript file into memory. HTML exports are
// stripped to their visible text; everything else is treated as plain
// UTF-8 text.
func LoadTranscript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	text := string(data)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return StripHTML(text)
	default:
		return text, nil
	}
}

// StripHTML extracts visible text from an HTML document, skipping
// scripts, styles, and other non-content elements
func StripHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimRight(buf.String(), "\n"), nil
}
