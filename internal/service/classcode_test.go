package service

import (
	"strings"
	"testing"
)

func TestGenerateClassCodeLength(t *testing.T) {
	code, err := GenerateClassCode()
	if err != nil {
		t.Fatalf("GenerateClassCode() error = %v", err)
	}
	if len(code) != ClassCodeLength {
		t.Errorf("len(code) = %d, want %d", len(code), ClassCodeLength)
	}
}

func TestGenerateClassCodeCharset(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateClassCode()
		if err != nil {
			t.Fatalf("GenerateClassCode() error = %v", err)
		}
		for _, c := range code {
			if !strings.ContainsRune(classCodeCharset, c) {
				t.Errorf("code %q contains %q outside charset", code, c)
			}
		}
	}
}

func TestGenerateClassCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateClassCode()
		if err != nil {
			t.Fatalf("GenerateClassCode() error = %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("expected distinct codes across draws")
	}
}
