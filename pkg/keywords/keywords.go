// Package keywords derives topic keywords from lore text. Keywords ride
// on world documents for display and export; they take no part in query
// matching.
package keywords

import (
	"strings"
	"unicode/utf8"

	"github.com/orsinium-labs/stopwords"

	"github.com/bramtechsolutions/campaign-rag/pkg/textnorm"
)

// DefaultMax caps how many keywords one document gets.
const DefaultMax = 8

// customStop filters table-chatter tokens the English list doesn't know.
var customStop = map[string]bool{
	"ooc": true, "gm": true, "dm": true, "npc": true,
	"session": true, "campaign": true, "roll": true,
}

// checker is the robust English stop-word list.
var checker = stopwords.MustGet("en")

// Derive returns up to max distinct keywords from text in first-seen
// order. Tokens are normalized, then filtered through the custom map and
// the English stop-word list. max <= 0 falls back to DefaultMax.
func Derive(text string, max int) []string {
	if max <= 0 {
		max = DefaultMax
	}

	seen := make(map[string]bool)
	out := make([]string, 0, max)
	for _, tok := range strings.Fields(textnorm.Normalize(text)) {
		if utf8.RuneCountInString(tok) <= 2 || seen[tok] {
			continue
		}
		seen[tok] = true

		// 1. Check custom stop map
		if customStop[tok] {
			continue
		}
		// 2. Check robust stop-word list
		if checker != nil && checker.Contains(tok) {
			continue
		}

		out = append(out, tok)
		if len(out) == max {
			break
		}
	}
	return out
}
