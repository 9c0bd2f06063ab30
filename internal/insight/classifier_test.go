package insight

import "testing"

func TestClassifyFirstMatchWins(t *testing.T) {
	c := NewClassifier([]Rule{
		{Keyword: "alpha", Topic: "A"},
		{Keyword: "beta", Topic: "B"},
	}, "fallback")

	// Both keywords present — rule order decides, not match position.
	if got := c.Classify("some beta then alpha text"); got != "A" {
		t.Errorf("Classify = %q, want %q", got, "A")
	}
}

func TestClassifyFallback(t *testing.T) {
	c := NewClassifier([]Rule{{Keyword: "alpha", Topic: "A"}}, "fallback")
	if got := c.Classify("nothing relevant here"); got != "fallback" {
		t.Errorf("Classify = %q, want fallback", got)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if got := ConceptClassifier.Classify("Explain SQL joins"); got != "SQL Query Structure" {
		t.Errorf("Classify = %q, want SQL Query Structure", got)
	}
}

func TestConceptClassifierRules(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"What is normalization to BCNF?", "Normalization (3NF/BCNF)"},
		{"Write a sql query", "SQL Query Structure"},
		{"When is an index scan preferred?", "Indexing Strategies"},
		{"Describe transaction isolation levels", "Transaction Management"},
		{"What enforces referential integrity?", "Data Integrity"},
		{"What is a foreign key constraint?", DefaultTopic},
	}
	for _, tt := range tests {
		if got := ConceptClassifier.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestTrendClassifierRules(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"What is a foreign key constraint?", "Keys & Constraints"},
		{"normalization question", "Normalization"},
		{"sql question", "SQL Structure"},
		{"unclassified question", DefaultTopic},
	}
	for _, tt := range tests {
		if got := TrendClassifier.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
