package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glean/internal/cache"
	"glean/internal/extract"
	"glean/internal/glossary"
	"glean/internal/llm"
	"glean/internal/model"
	"glean/internal/pipeline"
	"glean/internal/worker"
)

var (
	outMD             string
	outJSON           string
	glossaryPath      string
	skipGlossary      bool
	includeTranscript bool
	noExtractions     bool
	noGlossary        bool
	maxTerms          int
	chunkSize         int
	noCache           bool
	strict            bool
	meetingID         string
	llmEnabled        bool
	llmProvider       string
	llmModel          string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <transcript-file>",
	Short: "Analyze a single transcript and generate a report",
	Long: `Analyze processes one meeting transcript to:
- Split it into chunks respecting line boundaries
- Classify sentences as decisions, actions, opinions, or questions
- Link mentions of known glossary terms
- Suggest recurring unknown terms as new glossary entries
- Generate a Markdown report, optionally JSON

Example:
  glean analyze standup.txt
  glean analyze standup.txt -o report.md --json report.json
  glean analyze standup.txt --llm --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addAnalyzeFlags(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&outMD, "output", "o", "", "output Markdown path (default: stdout)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&meetingID, "meeting-id", "", "meeting identifier (default: transcript file name)")
}

// addAnalyzeFlags registers the flags shared by analyze and batch
func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&glossaryPath, "glossary", "", "glossary JSON path (default: data/glossary.json)")
	cmd.Flags().BoolVar(&skipGlossary, "skip-glossary", false, "skip glossary loading and term suggestion")
	cmd.Flags().BoolVar(&includeTranscript, "include-transcript", false, "append the raw transcript to the Markdown report")
	cmd.Flags().BoolVar(&noExtractions, "no-extractions", false, "omit the extractions section from the report")
	cmd.Flags().BoolVar(&noGlossary, "no-glossary", false, "omit the glossary section from the report")
	cmd.Flags().IntVar(&maxTerms, "max-terms", 5, "max new term suggestions per run (0 = unlimited)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 3000, "chunk size budget in characters")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the completion cache")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on degradable errors instead of warning")

	// LLM flags
	cmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM classification")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Chunk size: %d\n", cfg.Chunking.Size)
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "LLM: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	transcript, err := pipeline.LoadTranscript(path)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}

	terms, err := loadGlossary(cfg)
	if err != nil {
		return err
	}

	id := meetingID
	if id == "" {
		id = worker.MeetingID(path)
	}

	classifier, err := buildClassifier(cfg, id)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, classifier)
	report, err := p.Analyze(ctx, transcript, terms, id)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	renderer := pipeline.NewRenderer(cfg.Output)
	if err := renderer.WriteMarkdown(report, outMD); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	if outJSON != "" {
		if err := renderer.WriteJSON(report, outJSON); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}

	if cfg.Output.Verbose {
		renderer.Summary(report)
	}

	return nil
}

// buildConfig assembles the runtime configuration from flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Chunking.Size = chunkSize
	cfg.Terms.MaxTerms = maxTerms
	if glossaryPath != "" {
		cfg.Glossary.Path = glossaryPath
	}
	cfg.Glossary.Skip = skipGlossary
	cfg.Cache.Enabled = !noCache
	cfg.Strict = strict
	cfg.Output.IncludeTranscript = includeTranscript
	cfg.Output.NoExtractions = noExtractions
	cfg.Output.NoGlossary = noGlossary
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// loadGlossary loads the glossary per config. A missing file is an
// empty glossary; a malformed one degrades with a warning unless strict
// mode is enabled.
func loadGlossary(cfg *model.Config) ([]model.GlossaryTerm, error) {
	if cfg.Glossary.Skip {
		return nil, nil
	}

	terms, err := glossary.Load(cfg.Glossary.Path)
	if err != nil {
		if cfg.Strict {
			return nil, fmt.Errorf("load glossary: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: glossary degraded: %v\n", err)
		return nil, nil
	}

	return terms, nil
}

// buildClassifier selects the classifier for one run. meetingID is
// stamped on new term suggestions as their first mention.
func buildClassifier(cfg *model.Config, meetingID string) (extract.Classifier, error) {
	if cfg.LLM.Provider == "" {
		return extract.NewRuleClassifier(cfg.Terms.MaxTerms, meetingID), nil
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)

	return extract.NewLLMClassifier(provider, store, limiter, cfg.LLM, cfg.Terms.MaxTerms, meetingID), nil
}
