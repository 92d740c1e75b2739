package domain

import (
	"strings"
	"testing"
)

func TestGenerateCodeLengthAndAlphabet(t *testing.T) {
	code, err := GenerateCode(CodeLength)
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	if len(code) != CodeLength {
		t.Fatalf("expected %d characters, got %d", CodeLength, len(code))
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Fatalf("character %q is outside the code alphabet", r)
		}
	}
}

func TestGenerateCodeDefaultsLength(t *testing.T) {
	code, err := GenerateCode(0)
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("expected default length %d, got %d", CodeLength, len(code))
	}
}

func TestGenerateCodeExcludesAmbiguousCharacters(t *testing.T) {
	for _, r := range "0O1I" {
		if strings.ContainsRune(codeAlphabet, r) {
			t.Fatalf("alphabet must not contain ambiguous character %q", r)
		}
	}
	if len(codeAlphabet) != 32 {
		t.Fatalf("expected 32 character alphabet, got %d", len(codeAlphabet))
	}
}

func TestGenerateCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		code, err := GenerateCode(CodeLength)
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if seen[code] {
			t.Fatalf("generated duplicate code %q in a small sample", code)
		}
		seen[code] = true
	}
}
