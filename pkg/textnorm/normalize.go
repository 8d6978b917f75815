// Package textnorm provides the canonical text form used for all
// case- and punctuation-insensitive comparison: classification key
// derivation on the write path, query matching on the read path.
package textnorm

import (
	"strings"
	"unicode/utf8"
)

// punctuation is the fixed, locale-independent set stripped by Normalize.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// StopWords filtered out of query tokens. Includes the intent words
// (color, instrument, playing) so that "what color are his eyes" matches
// on the content-bearing tokens only.
var StopWords = map[string]bool{
	"what": true, "is": true, "are": true, "the": true,
	"a": true, "an": true, "of": true, "and": true,
	"to": true, "in": true, "on": true,
	"his": true, "her": true, "he": true, "she": true, "its": true,
	"color": true, "instrument": true, "playing": true,
}

// Normalize lower-cases s and deletes every punctuation character.
// Letters, digits, whitespace and other symbols pass through untouched.
// Total and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Tokenize normalizes s, splits on whitespace, and drops tokens that are
// too short (<= 2 runes) or in the stop-word set. An empty or
// all-stop-word input yields an empty slice.
func Tokenize(s string) []string {
	fields := strings.Fields(Normalize(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 2 || StopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
