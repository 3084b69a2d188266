package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected non-streaming request")
		}

		resp := ollamaResponse{
			Model:           req.Model,
			Response:        `Here are the results: [{"term":"Helm","definition":"deploy tool"}]`,
			Done:            true,
			PromptEvalCount: 200,
			EvalCount:       40,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL: server.URL,
		Model:   "llama3.1:8b",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "find terms"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.TokensIn != 200 || resp.TokensOut != 40 {
		t.Errorf("Unexpected token counts: in=%d out=%d", resp.TokensIn, resp.TokensOut)
	}
}

func TestOllamaProvider_RequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(Config{BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Error("Expected error when no model configured")
	}
}

func TestOllamaProvider_TokenEstimateFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := ollamaResponse{
			Model:    "mistral",
			Response: "some completion text of reasonable length",
			Done:     true,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "mistral"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "a prompt that is forty characters long!!"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.TokensIn == 0 || resp.TokensOut == 0 {
		t.Error("Expected estimated token counts when Ollama reports none")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	tests := []struct {
		provider  string
		apiKey    string
		expectNil bool
		expectErr bool
	}{
		{"", "", true, false},
		{"openai", "sk-test", false, false},
		{"anthropic", "sk-ant-test", false, false},
		{"claude", "sk-ant-test", false, false},
		{"ollama", "", false, false},
		{"mystery", "", false, true},
	}

	for _, tt := range tests {
		p, err := NewProvider(Config{Provider: tt.provider, APIKey: tt.apiKey})
		if tt.expectErr {
			if err == nil {
				t.Errorf("Provider %q: expected error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("Provider %q: unexpected error %v", tt.provider, err)
			continue
		}
		if tt.expectNil && p != nil {
			t.Errorf("Provider %q: expected nil provider", tt.provider)
		}
		if !tt.expectNil && p == nil {
			t.Errorf("Provider %q: expected non-nil provider", tt.provider)
		}
	}
}
