package insight

import (
	"strings"
	"testing"
)

func TestExtractIncorrectAnswer(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"quoted token", "Students confused 'NULL reference' with pointers", "NULL reference"},
		{"no quotes", "Students confused the options", DefaultIncorrectAnswer},
		{"odd quote count fails open", "Students picked 'something", DefaultIncorrectAnswer},
		{"empty token", "picked '' blank", ""},
		{"only first pair used", "mixed 'first' and 'second'", "first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractIncorrectAnswer(tt.label); got != tt.want {
				t.Errorf("ExtractIncorrectAnswer(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestReasoningInterpolates(t *testing.T) {
	got := Reasoning(4, "primary key")
	if !strings.Contains(got, "4 students") {
		t.Errorf("reasoning missing student count: %q", got)
	}
	if !strings.Contains(got, "'primary key'") {
		t.Errorf("reasoning missing token: %q", got)
	}
}

func TestImpactSummaryNamesTopic(t *testing.T) {
	got := ImpactSummary(2, "Indexing Strategies", 6)
	if !strings.Contains(got, "'Indexing Strategies'") || !strings.Contains(got, "2 distinct") {
		t.Errorf("unexpected impact summary: %q", got)
	}
}
