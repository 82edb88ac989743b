// Package rfc checks the lexical shape of Mexican taxpayer identifiers (RFC).
//
// Only the shape is checked: 3 letters for legal entities or 4 for individuals
// (A-Z, Ñ or &), a six digit date, and an optional three character homoclave.
// Nothing is verified against the tax authority.
package rfc

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var pattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}(?:[A-Z0-9]{3})?$`)

// Normalize trims surrounding whitespace and upper-cases s.
func Normalize(s string) string {
	// cases.Caser is stateful; build one per call so Normalize stays safe for
	// concurrent use.
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// IsValid reports whether an already normalized value has the RFC shape.
func IsValid(normalized string) bool {
	return pattern.MatchString(normalized)
}

// Validate normalizes raw and checks it. It never fails: any input, including
// empty or non UTF-8 strings, yields a verdict.
func Validate(raw string) (normalized string, valid bool) {
	normalized = Normalize(raw)
	return normalized, IsValid(normalized)
}
