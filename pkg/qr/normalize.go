// Package qr derives canonical cylinder identifiers from raw scanned text.
//
// Scanner output is noisy: some devices prepend descriptive labels
// ("Q.C PASSED 05285AWI1ES04"), others pad the payload with whitespace or
// punctuation. Every scan and manual-entry path in the API runs through
// Normalize before touching storage, so lookups and uniqueness checks see
// one canonical form.
package qr

import (
	"strings"
	"unicode"
)

// IdentifierPrefix is the canonical prefix carried by every full cylinder
// identifier.
const IdentifierPrefix = "LPG-"

// ExtractLastSignificantToken returns the rightmost whitespace-delimited
// token of raw that contains at least one alphanumeric character, with any
// leading and trailing runs of non-alphanumeric characters trimmed off.
//
// Empty or whitespace-only input is returned unchanged. If no token contains
// an alphanumeric character, the last token is returned as-is. The function
// never returns an empty string for input that contains an alphanumeric
// character somewhere.
func ExtractLastSignificantToken(raw string) string {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return raw
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		if !containsAlphanumeric(token) {
			continue
		}
		trimmed := strings.TrimFunc(token, func(r rune) bool {
			return !isAlphanumeric(r)
		})
		if trimmed == "" {
			// Trimming erased the token entirely; hand back the raw token
			// rather than an empty identifier.
			return token
		}
		return trimmed
	}

	// No token carries an alphanumeric character at all.
	return tokens[len(tokens)-1]
}

// Normalize is the stable public entry point used by scan handlers,
// manual-entry handlers and the lookup API.
func Normalize(raw string) string {
	return ExtractLastSignificantToken(raw)
}

// DeriveFullIdentifier converts raw scanned or typed text into the full
// canonical identifier: the normalized token, uppercased, carrying exactly
// one "LPG-" prefix. Idempotent: feeding its own output back in yields the
// same result.
func DeriveFullIdentifier(raw string) string {
	code := strings.ToUpper(Normalize(raw))
	code = strings.TrimPrefix(code, IdentifierPrefix)
	return IdentifierPrefix + code
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsAlphanumeric(s string) bool {
	for _, r := range s {
		if isAlphanumeric(r) {
			return true
		}
	}
	return false
}
