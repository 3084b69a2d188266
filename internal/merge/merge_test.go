package merge

import (
	"reflect"
	"strings"
	"testing"

	"glean/internal/model"
)

func TestMerger_DedupKeyCountsRunesNotBytes(t *testing.T) {
	m := New(nil, 0)

	// 25 two-byte runes put the 50-byte mark mid-prefix; both contents
	// differ well inside the first 50 runes and must stay distinct
	prefix := strings.Repeat("é", 25)
	m.AddExtractions([]model.Extraction{
		{Type: model.TypeDecision, Content: prefix + " alpha path", Confidence: 80},
		{Type: model.TypeDecision, Content: prefix + " beta route", Confidence: 75},
	})

	if got := len(m.Extractions()); got != 2 {
		t.Fatalf("Expected distinct statements to survive, got %d", got)
	}
}

func TestMerger_DuplicateExtractionsKeepHighestConfidence(t *testing.T) {
	m := New(nil, 0)

	// Two chunks independently produce the same decision with different
	// casing and confidence
	m.AddExtractions([]model.Extraction{
		{Type: model.TypeDecision, Content: "We will use Postgres", Confidence: 75},
	})
	m.AddExtractions([]model.Extraction{
		{Type: model.TypeDecision, Content: "we will use postgres", Confidence: 82},
	})

	out := m.Extractions()
	if len(out) != 1 {
		t.Fatalf("Expected exactly 1 extraction after dedup, got %d", len(out))
	}
	if out[0].Confidence != 82 {
		t.Errorf("Expected winning confidence 82, got %d", out[0].Confidence)
	}
}

func TestMerger_TiesKeepFirstEncountered(t *testing.T) {
	m := New(nil, 0)

	m.AddExtractions([]model.Extraction{
		{Type: model.TypeAction, Content: "Follow up with legal", Confidence: 78, Speaker: "Alice"},
		{Type: model.TypeAction, Content: "follow up with legal", Confidence: 78, Speaker: "Bob"},
	})

	out := m.Extractions()
	if len(out) != 1 {
		t.Fatalf("Expected 1 extraction, got %d", len(out))
	}
	if out[0].Speaker != "Alice" {
		t.Errorf("Expected first-encountered extraction to win ties, got speaker %q", out[0].Speaker)
	}
}

func TestMerger_DifferentTypesNeverCollapse(t *testing.T) {
	m := New(nil, 0)

	m.AddExtractions([]model.Extraction{
		{Type: model.TypeDecision, Content: "ship on Friday", Confidence: 80},
		{Type: model.TypeAction, Content: "ship on Friday", Confidence: 78},
	})

	if out := m.Extractions(); len(out) != 2 {
		t.Errorf("Expected extractions of different types to survive, got %d", len(out))
	}
}

func TestMerger_ExtractionsSortedByConfidence(t *testing.T) {
	m := New(nil, 0)

	m.AddExtractions([]model.Extraction{
		{Type: model.TypeOpinion, Content: "a", Confidence: 70},
		{Type: model.TypeQuestion, Content: "b", Confidence: 90},
		{Type: model.TypeAction, Content: "c", Confidence: 78},
	})

	out := m.Extractions()
	for i := 1; i < len(out); i++ {
		if out[i].Confidence > out[i-1].Confidence {
			t.Fatalf("Output not sorted by descending confidence: %v", out)
		}
	}
}

func TestMerger_KnownGlossaryTermDiscarded(t *testing.T) {
	glossary := []model.GlossaryTerm{
		{Term: "RAG", Aliases: []string{"retrieval augmented generation"}, Frequency: 12, Approved: true},
	}
	m := New(glossary, 0)

	m.AddTerms([]model.GlossaryTerm{
		{Term: "RAG", Frequency: 3},
		{Term: "rag", Frequency: 1},
		{Term: "Kafka", Frequency: 2},
	})

	out := m.Suggestions()
	if len(out) != 1 {
		t.Fatalf("Expected only the unknown term to survive, got %d: %v", len(out), out)
	}
	if out[0].Term != "Kafka" {
		t.Errorf("Expected 'Kafka', got %q", out[0].Term)
	}
}

func TestMerger_EquivalentSuggestionsMergeFrequency(t *testing.T) {
	m := New(nil, 0)

	m.AddTerms([]model.GlossaryTerm{{Term: "Kubernetes", Frequency: 2}})
	m.AddTerms([]model.GlossaryTerm{{Term: "Kubernets", Frequency: 3}}) // Near-match spelling

	out := m.Suggestions()
	if len(out) != 1 {
		t.Fatalf("Expected merged suggestion, got %d", len(out))
	}
	if out[0].Term != "Kubernetes" {
		t.Errorf("Expected first-seen spelling to be canonical, got %q", out[0].Term)
	}
	if out[0].Frequency != 5 {
		t.Errorf("Expected summed frequency 5, got %d", out[0].Frequency)
	}
}

func TestMerger_MaxTermsTruncation(t *testing.T) {
	m := New(nil, 2)

	m.AddTerms([]model.GlossaryTerm{
		{Term: "Alpha", Frequency: 5},
		{Term: "Bravo", Frequency: 3},
		{Term: "Charlie", Frequency: 3},
		{Term: "Delta", Frequency: 1},
	})

	out := m.Suggestions()
	if len(out) != 2 {
		t.Fatalf("Expected exactly 2 suggestions, got %d", len(out))
	}
	if out[0].Term != "Alpha" {
		t.Errorf("Expected highest-frequency term first, got %q", out[0].Term)
	}
	// Frequency-3 tie broken by first-seen order
	if out[1].Term != "Bravo" {
		t.Errorf("Expected first-seen tie winner 'Bravo', got %q", out[1].Term)
	}
}

func TestMerger_DedupIdempotence(t *testing.T) {
	m := New(nil, 0)
	m.AddExtractions([]model.Extraction{
		{Type: model.TypeDecision, Content: "We will use Postgres", Confidence: 82},
		{Type: model.TypeDecision, Content: "we will use postgres", Confidence: 75},
		{Type: model.TypeQuestion, Content: "Should we shard?", Confidence: 90},
	})
	m.AddTerms([]model.GlossaryTerm{
		{Term: "Sharding", Frequency: 2},
		{Term: "Postgres", Frequency: 4},
	})

	first := m.Extractions()
	firstTerms := m.Suggestions()

	// Feed the merged output through a fresh merger
	m2 := New(nil, 0)
	m2.AddExtractions(first)
	m2.AddTerms(firstTerms)

	second := m2.Extractions()
	secondTerms := m2.Suggestions()

	if len(second) != len(first) {
		t.Errorf("Extraction dedup not idempotent: %d then %d", len(first), len(second))
	}
	for i := range second {
		if !reflect.DeepEqual(second[i], first[i]) {
			t.Errorf("Extraction %d changed on re-merge: %+v vs %+v", i, first[i], second[i])
		}
	}

	if len(secondTerms) != len(firstTerms) {
		t.Errorf("Term merge not idempotent: %d then %d", len(firstTerms), len(secondTerms))
	}
	for i := range secondTerms {
		if secondTerms[i].Term != firstTerms[i].Term || secondTerms[i].Frequency != firstTerms[i].Frequency {
			t.Errorf("Suggestion %d changed on re-merge: %+v vs %+v", i, firstTerms[i], secondTerms[i])
		}
	}
}

func TestMerger_EmptyNormalizedTermSkipped(t *testing.T) {
	m := New(nil, 0)
	m.AddTerms([]model.GlossaryTerm{{Term: "---", Frequency: 7}})

	if out := m.Suggestions(); len(out) != 0 {
		t.Errorf("Expected all-punctuation term to be skipped, got %v", out)
	}
}
