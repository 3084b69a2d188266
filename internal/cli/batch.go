package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"glean/internal/cache"
	"glean/internal/extract"
	"glean/internal/llm"
	"glean/internal/model"
	"glean/internal/pipeline"
	"glean/internal/worker"
)

var (
	concurrency int
	outputDir   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <listing-file-or-dir>",
	Short: "Analyze multiple transcripts in parallel",
	Long: `Batch processes multiple transcripts concurrently:
- Read transcript paths from a listing file (one per line), or pick up
  every .txt/.md/.html file in a directory
- Analyze transcripts in parallel with configurable worker count
- Write one Markdown and one JSON report per transcript

Example:
  glean batch meetings/
  glean batch transcripts.txt --concurrency 8 --output-dir ./reports
  glean batch meetings/ --llm --llm-provider ollama --llm-model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./glean-reports", "output directory for reports")

	addAnalyzeFlags(batchCmd)
}

// batchAnalyzer builds one pipeline per transcript so each run stamps
// its own meeting ID on new term suggestions. The completion cache and
// rate limiter are shared across the whole batch.
type batchAnalyzer struct {
	cfg      *model.Config
	provider llm.Provider
	store    cache.Cache
	limiter  *worker.Limiter
}

func (a *batchAnalyzer) Analyze(ctx context.Context, transcript string, terms []model.GlossaryTerm, meetingID string) (*model.Report, error) {
	var classifier extract.Classifier
	if a.provider != nil {
		classifier = extract.NewLLMClassifier(a.provider, a.store, a.limiter, a.cfg.LLM, a.cfg.Terms.MaxTerms, meetingID)
	} else {
		classifier = extract.NewRuleClassifier(a.cfg.Terms.MaxTerms, meetingID)
	}

	return pipeline.New(a.cfg, classifier).Analyze(ctx, transcript, terms, meetingID)
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx := context.Background()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Glean Batch Processing\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	paths, err := worker.CollectPaths(input)
	if err != nil {
		return fmt.Errorf("collect transcripts: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no transcripts found in %s", input)
	}

	terms, err := loadGlossary(cfg)
	if err != nil {
		return err
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	analyzer := &batchAnalyzer{cfg: cfg}
	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}
		analyzer.provider = provider
		if cfg.Cache.Enabled {
			analyzer.store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		}
		analyzer.limiter = worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	}

	processor := worker.NewBatchProcessor(analyzer, terms, concurrency)

	fmt.Fprintf(os.Stderr, "Processing %d transcripts with %d workers...\n\n", len(paths), concurrency)

	results := processor.ProcessPaths(ctx, paths)

	renderer := pipeline.NewRenderer(cfg.Output)
	successCount, failureCount := writeBatchReports(renderer, results, outputDir)

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d transcripts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 && strict {
		return fmt.Errorf("%d of %d transcripts failed", failureCount, len(results))
	}

	return nil
}

// writeBatchReports renders one Markdown and one JSON report per
// analyzed transcript into dir. A transcript counts as a success only
// when its analysis and both report writes succeed.
func writeBatchReports(renderer *pipeline.Renderer, results []*worker.AnalyzeResult, dir string) (successCount, failureCount int) {
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := worker.MeetingID(result.Path)
		mdPath := filepath.Join(dir, slug+".md")
		jsonPath := filepath.Join(dir, slug+".json")

		if err := renderer.WriteMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write markdown: %v\n", result.Path, err)
			continue
		}
		if err := renderer.WriteJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write json: %v\n", result.Path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "OK   %s (%d extractions, %d new terms)\n",
			result.Path, result.Report.Stats.ExtractionCount, result.Report.Stats.NewTermCount)
	}

	return successCount, failureCount
}
