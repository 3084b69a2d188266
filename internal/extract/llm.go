package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"glean/internal/cache"
	"glean/internal/llm"
	"glean/internal/model"
)

// ErrMalformedResponse marks a chunk whose completion contained no
// usable JSON array. Non-strict runs treat it as zero contributions.
var ErrMalformedResponse = fmt.Errorf("no well-formed JSON array in completion")

// Waiter throttles completion calls. worker.Limiter satisfies it.
type Waiter interface {
	Wait(ctx context.Context, key string) error
}

// LLMClassifier is the model-backed strategy. Each chunk costs two
// completion calls: one for extractions, one for term candidates.
// Completions are cached by model+prompt hash so re-running a
// transcript does not re-spend tokens.
type LLMClassifier struct {
	provider  llm.Provider
	cache     cache.Cache // nil disables caching
	limiter   Waiter      // nil disables throttling
	modelName string
	maxTokens int
	maxTerms  int
	meetingID string
}

// NewLLMClassifier creates a model-backed classifier. cache and limiter
// may be nil.
func NewLLMClassifier(provider llm.Provider, c cache.Cache, limiter Waiter, cfg model.LLMConfig, maxTerms int, meetingID string) *LLMClassifier {
	return &LLMClassifier{
		provider:  provider,
		cache:     c,
		limiter:   limiter,
		modelName: cfg.Model,
		maxTokens: cfg.MaxTokens,
		maxTerms:  maxTerms,
		meetingID: meetingID,
	}
}

// Mode identifies the strategy for run stats
func (c *LLMClassifier) Mode() model.Mode {
	return model.ModeLLM
}

// ModelName returns the configured model identifier
func (c *LLMClassifier) ModelName() string {
	return c.modelName
}

// Classify sends the chunk through two completion calls and parses the
// first well-formed JSON array in each response. A malformed response
// yields the tokens spent plus ErrMalformedResponse; the caller decides
// whether that degrades or fails the run.
func (c *LLMClassifier) Classify(ctx context.Context, chunk string, glossary []model.GlossaryTerm) (*ChunkResult, error) {
	result := &ChunkResult{}

	extText, err := c.complete(ctx, extractionPrompt(chunk, glossary), result)
	if err != nil {
		return result, fmt.Errorf("extraction completion: %w", err)
	}

	termText, err := c.complete(ctx, termPrompt(chunk, glossary, c.maxTerms), result)
	if err != nil {
		return result, fmt.Errorf("term completion: %w", err)
	}

	var malformed bool

	var wireExts []wireExtraction
	if findJSONArray(extText, &wireExts) {
		for _, w := range wireExts {
			if ext, ok := w.toExtraction(); ok {
				result.Extractions = append(result.Extractions, ext)
			}
		}
	} else {
		malformed = true
	}

	var wireTerms []wireTerm
	if findJSONArray(termText, &wireTerms) {
		for _, w := range wireTerms {
			if t, ok := w.toTerm(c.meetingID); ok {
				result.Terms = append(result.Terms, t)
			}
		}
	} else {
		malformed = true
	}

	if malformed {
		return result, ErrMalformedResponse
	}
	return result, nil
}

// complete runs one completion, consulting the cache first and tracking
// token usage on the result
func (c *LLMClassifier) complete(ctx context.Context, prompt string, result *ChunkResult) (string, error) {
	key := cache.CompletionKey(c.modelName, prompt)

	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			return string(data), nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.provider.Name()); err != nil {
			return "", err
		}
	}

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:    systemPrompt,
		Prompt:    prompt,
		Model:     c.modelName,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	result.TokensIn += resp.TokensIn
	result.TokensOut += resp.TokensOut

	if c.cache != nil {
		if err := c.cache.Set(key, []byte(resp.Text), 0); err != nil {
			// Cache write failure never affects the run
			_ = err
		}
	}

	return resp.Text, nil
}

// wireExtraction is the loose schema for model-returned extractions
type wireExtraction struct {
	Type          string   `json:"type"`
	Content       string   `json:"content"`
	Confidence    float64  `json:"confidence"`
	Speaker       string   `json:"speaker"`
	SourceSnippet string   `json:"sourceSnippet"`
	RelatedTerms  []string `json:"relatedTerms"`
}

func (w wireExtraction) toExtraction() (model.Extraction, bool) {
	content := strings.TrimSpace(w.Content)
	if content == "" {
		return model.Extraction{}, false
	}

	extType := model.ExtractionType(strings.ToLower(strings.TrimSpace(w.Type)))
	if !extType.IsValid() {
		// Unknown type from the model: coerce to opinion as a safe default
		extType = model.TypeOpinion
	}

	return model.Extraction{
		Type:          extType,
		Content:       content,
		Confidence:    model.ClampConfidence(int(w.Confidence)),
		Speaker:       strings.TrimSpace(w.Speaker),
		SourceSnippet: model.TruncateSnippet(w.SourceSnippet),
		RelatedTerms:  w.RelatedTerms,
	}, true
}

// wireTerm is the loose schema for model-returned term candidates
type wireTerm struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Aliases    []string `json:"aliases"`
}

func (w wireTerm) toTerm(meetingID string) (model.GlossaryTerm, bool) {
	name := strings.TrimSpace(w.Term)
	if name == "" {
		return model.GlossaryTerm{}, false
	}
	return model.GlossaryTerm{
		Term:           name,
		Definition:     strings.TrimSpace(w.Definition),
		Aliases:        w.Aliases,
		FirstMentioned: meetingID,
		Frequency:      1,
		Approved:       false,
	}, true
}

// findJSONArray locates the first well-formed JSON array in text and
// unmarshals it into target. The model may wrap the array in prose, so
// every '[' is tried in order until one balances and parses.
func findJSONArray(text string, target interface{}) bool {
	for start := 0; start < len(text); start++ {
		if text[start] != '[' {
			continue
		}
		end, ok := balanceArray(text, start)
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), target); err == nil {
			return true
		}
	}
	return false
}

// balanceArray finds the index of the ']' closing the '[' at start,
// skipping brackets inside JSON strings
func balanceArray(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
