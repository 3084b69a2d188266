package term

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"RAG", "rag"},
		{"Retrieval-Augmented Generation", "retrievalaugmentedgeneration"},
		{"  K8s!  ", "k8s"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEquivalent_Reflexive(t *testing.T) {
	labels := []string{"RAG", "PostgreSQL", "edit distance", "a"}
	for _, label := range labels {
		if !Equivalent(label, label) {
			t.Errorf("Expected %q to be equivalent to itself", label)
		}
	}
}

func TestEquivalent_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"RAG", "rag"},
		{"Postgres", "PostgreSQL"},
		{"kubernetes", "Kubernets"},
		{"alpha", "omega"},
	}

	for _, pair := range pairs {
		ab := Equivalent(pair[0], pair[1])
		ba := Equivalent(pair[1], pair[0])
		if ab != ba {
			t.Errorf("Equivalent(%q, %q)=%v but Equivalent(%q, %q)=%v", pair[0], pair[1], ab, pair[1], pair[0], ba)
		}
	}
}

func TestEquivalent_NearMatch(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"RAG", "R.A.G.", true},       // Same after normalization
		{"Kubernets", "Kubernetes", true}, // Distance 1
		{"color", "colours", true},    // Distance 2
		{"alpha", "omega", false},     // Too far apart
		{"API", "SDK", false},
	}

	for _, tt := range tests {
		if got := Equivalent(tt.a, tt.b); got != tt.expected {
			t.Errorf("Equivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestEquivalent_EmptyNeverMatches(t *testing.T) {
	if Equivalent("", "") {
		t.Error("Two empty labels must not be equivalent")
	}
	if Equivalent("---", "!!!") {
		t.Error("All-punctuation labels must not be equivalent")
	}
	if Equivalent("...", "abc") {
		t.Error("Empty normalized form must never match a real label")
	}
}

func TestEquivalentToAny(t *testing.T) {
	known := []string{"RAG", "retrieval augmented generation", "Postgres"}

	if !EquivalentToAny("rag", known) {
		t.Error("Expected 'rag' to match known label 'RAG'")
	}
	if !EquivalentToAny("PostgreSQL", known) {
		t.Error("Expected 'PostgreSQL' to near-match 'Postgres'")
	}
	if EquivalentToAny("Kafka", known) {
		t.Error("Did not expect 'Kafka' to match any known label")
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.expected {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}
