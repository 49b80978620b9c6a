package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLastSignificantToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"scanner label prefix", "Q.C PASSED   05285AWI1ES04", "05285AWI1ES04"},
		{"plain code", "ABC123", "ABC123"},
		{"trailing colon trimmed", "code: ABC123:", "ABC123"},
		{"surrounding punctuation trimmed", "(ABC-123)", "ABC-123"},
		{"multiple consecutive spaces", "label    X9",
			"X9"},
		{"tabs and newlines", "label\t\n X9", "X9"},
		{"empty input unchanged", "", ""},
		{"whitespace only unchanged", "   ", "   "},
		{"no alphanumeric token falls back to last token", "*** ---", "---"},
		{"single punctuation token", "***", "***"},
		{"last token punctuation only, earlier token wins", "ABC123 :::", "ABC123"},
		{"mixed case preserved", "scan lpg-ab12", "lpg-ab12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractLastSignificantToken(tt.input))
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	inputs := []string{"Q.C PASSED 05285AWI1ES04", "", "  ", "***", "abc"}
	for _, in := range inputs {
		assert.Equal(t, Normalize(in), Normalize(in))
	}
}

func TestNormalizeIdempotentOnCanonicalIdentifiers(t *testing.T) {
	ids := []string{"LPG-ABC123", "05285AWI1ES04", "X1"}
	for _, id := range ids {
		assert.Equal(t, id, Normalize(id))
	}
}

func TestDeriveFullIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abc123", "LPG-ABC123"},
		{"lpg-abc123", "LPG-ABC123"},
		{"LPG-ABC123", "LPG-ABC123"},
		{"Lpg-Abc123", "LPG-ABC123"},
		{"Q.C PASSED   05285AWI1ES04", "LPG-05285AWI1ES04"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DeriveFullIdentifier(tt.input))
	}
}

func TestDeriveFullIdentifierIdempotent(t *testing.T) {
	inputs := []string{"abc123", "lpg-abc123", "  scan lpg-x9  ", "05285AWI1ES04"}
	for _, in := range inputs {
		once := DeriveFullIdentifier(in)
		assert.Equal(t, once, DeriveFullIdentifier(once))
	}
}
