package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"glean/internal/model"
)

// Renderer serializes a report into Markdown or JSON. Rendering is pure
// string construction: sections appear in a fixed order and empty
// groups get an explicit placeholder so consumers can rely on section
// presence.
type Renderer struct {
	output model.OutputConfig
}

// NewRenderer creates a renderer with the given output options
func NewRenderer(output model.OutputConfig) *Renderer {
	return &Renderer{output: output}
}

// metadata is the YAML front-matter block; field order here is the
// render order
type metadata struct {
	MeetingID   string `yaml:"meeting_id,omitempty"`
	Chunks      int    `yaml:"chunks"`
	Extractions int    `yaml:"extractions"`
	NewTerms    int    `yaml:"new_terms"`
	Mode        string `yaml:"mode"`
	Model       string `yaml:"model,omitempty"`
	TokensIn    int    `yaml:"tokens_in"`
	TokensOut   int    `yaml:"tokens_out"`
	Actions     int    `yaml:"actions"`
	Decisions   int    `yaml:"decisions"`
	Opinions    int    `yaml:"opinions"`
	Questions   int    `yaml:"questions"`
	Terms       int    `yaml:"terms"`
	GeneratedAt string `yaml:"generated_at"`
}

var typeHeadings = map[model.ExtractionType]string{
	model.TypeAction:   "Actions",
	model.TypeDecision: "Decisions",
	model.TypeOpinion:  "Opinions",
	model.TypeQuestion: "Questions",
	model.TypeTerm:     "Term References",
}

// Markdown renders the complete report document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Meeting Analysis\n\n")
	r.writeMetadata(&b, report)

	if !r.output.NoExtractions {
		r.writeExtractions(&b, report)
	}
	if !r.output.NoGlossary {
		r.writeGlossary(&b, report)
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if r.output.IncludeTranscript {
		b.WriteString("## Transcript\n\n```\n")
		b.WriteString(report.Transcript)
		if !strings.HasSuffix(report.Transcript, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (r *Renderer) writeMetadata(b *strings.Builder, report *model.Report) {
	s := report.Stats
	meta := metadata{
		MeetingID:   s.MeetingID,
		Chunks:      s.ChunkCount,
		Extractions: s.ExtractionCount,
		NewTerms:    s.NewTermCount,
		Mode:        string(s.Mode),
		Model:       s.Model,
		TokensIn:    s.TokensIn,
		TokensOut:   s.TokensOut,
		Actions:     s.ByType[model.TypeAction],
		Decisions:   s.ByType[model.TypeDecision],
		Opinions:    s.ByType[model.TypeOpinion],
		Questions:   s.ByType[model.TypeQuestion],
		Terms:       s.ByType[model.TypeTerm],
		GeneratedAt: s.GeneratedAt.Format("2006-01-02T15:04:05Z"),
	}

	data, err := yaml.Marshal(meta)
	if err != nil {
		// yaml.Marshal on a plain struct cannot realistically fail
		data = []byte(fmt.Sprintf("error: %v\n", err))
	}

	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
}

func (r *Renderer) writeExtractions(b *strings.Builder, report *model.Report) {
	b.WriteString("## Extractions\n\n")

	for _, extType := range model.Types {
		fmt.Fprintf(b, "### %s\n\n", typeHeadings[extType])

		any := false
		for _, e := range report.Extractions {
			if e.Type != extType {
				continue
			}
			any = true

			fmt.Fprintf(b, "- **%s**", e.Content)
			details := []string{fmt.Sprintf("confidence %d", e.Confidence)}
			if e.Speaker != "" {
				details = append(details, "speaker "+e.Speaker)
			}
			fmt.Fprintf(b, " (%s)\n", strings.Join(details, ", "))

			if len(e.RelatedTerms) > 0 {
				fmt.Fprintf(b, "  - related terms: %s\n", strings.Join(e.RelatedTerms, ", "))
			}
		}

		if !any {
			fmt.Fprintf(b, "_No %s recorded._\n", strings.ToLower(typeHeadings[extType]))
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) writeGlossary(b *strings.Builder, report *model.Report) {
	b.WriteString("## Glossary\n\n")

	b.WriteString("### Approved Terms\n\n")
	if len(report.Glossary) == 0 {
		b.WriteString("_No approved terms._\n")
	}
	for _, g := range report.Glossary {
		writeTerm(b, g)
	}
	b.WriteString("\n")

	b.WriteString("### Suggested Terms\n\n")
	if len(report.Suggested) == 0 {
		b.WriteString("_No new terms suggested._\n")
	}
	for _, g := range report.Suggested {
		writeTerm(b, g)
	}
	b.WriteString("\n")
}

func writeTerm(b *strings.Builder, g model.GlossaryTerm) {
	fmt.Fprintf(b, "- **%s**", g.Term)
	if g.Definition != "" {
		fmt.Fprintf(b, ": %s", g.Definition)
	}

	var details []string
	if len(g.Aliases) > 0 {
		details = append(details, "aliases: "+strings.Join(g.Aliases, ", "))
	}
	details = append(details, fmt.Sprintf("frequency %d", g.Frequency))
	if g.FirstMentioned != "" {
		details = append(details, "first mentioned: "+g.FirstMentioned)
	}
	fmt.Fprintf(b, " (%s)\n", strings.Join(details, "; "))
}

// WriteMarkdown renders the report and writes it to path, or to stdout
// when path is empty
func (r *Renderer) WriteMarkdown(report *model.Report, path string) error {
	doc := r.Markdown(report)

	if path == "" {
		_, err := fmt.Print(doc)
		return err
	}

	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// WriteJSON writes the report as indented JSON to path
func (r *Renderer) WriteJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// Summary prints a short run summary to stderr
func (r *Renderer) Summary(report *model.Report) {
	s := report.Stats
	fmt.Fprintf(os.Stderr, "✓ %d chunks, %d extractions, %d new terms (%s",
		s.ChunkCount, s.ExtractionCount, s.NewTermCount, s.Mode)
	if s.Model != "" {
		fmt.Fprintf(os.Stderr, "/%s", s.Model)
	}
	fmt.Fprintf(os.Stderr, ")\n")
}
