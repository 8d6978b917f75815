// Package search matches free-text queries against the corpus. Matching
// is conjunctive and unranked: a document matches when every filtered
// query token appears as a substring of its normalized text. Results come
// back in partition order — characters, then sessions, then world.
package search

import (
	"strings"

	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
	"github.com/bramtechsolutions/campaign-rag/pkg/textnorm"
)

// Match is one query hit: the partition, the document key, and the
// document itself.
type Match struct {
	Type     corpus.Kind `json:"type"`
	Key      string      `json:"key"`
	Document any         `json:"document"`
}

// Options tunes match granularity.
type Options struct {
	// Phrase requires the whole normalized query to appear as one
	// substring of the document text, instead of each token separately.
	// It is the stricter special case of the default token policy.
	Phrase bool
}

// Engine answers queries against the currently published corpus
// snapshot. It is read-only and safe for concurrent use.
type Engine struct {
	store *corpus.Store
}

// NewEngine creates an engine reading from store.
func NewEngine(store *corpus.Store) *Engine {
	return &Engine{store: store}
}

// Query returns every document matching q under the default token
// policy. A query that normalizes to zero tokens (empty, or nothing but
// stop words and short tokens) matches nothing — not everything.
func (e *Engine) Query(q string) []Match {
	return e.QueryWith(q, Options{})
}

// QueryWith is Query with explicit options.
func (e *Engine) QueryWith(q string, opts Options) []Match {
	snap := e.store.Snapshot()

	accept := acceptFunc(q, opts)
	if accept == nil {
		return []Match{}
	}

	matches := make([]Match, 0)
	for key, c := range snap.Characters {
		if accept(c.SearchText) {
			matches = append(matches, Match{Type: corpus.KindCharacter, Key: key, Document: c})
		}
	}
	for key, s := range snap.Sessions {
		if accept(s.SearchText) {
			matches = append(matches, Match{Type: corpus.KindSession, Key: key, Document: s})
		}
	}
	for key, w := range snap.World {
		if accept(w.SearchText) {
			matches = append(matches, Match{Type: corpus.KindWorld, Key: key, Document: w})
		}
	}
	return matches
}

// acceptFunc compiles q into a predicate over normalized document text,
// or nil when the query carries no usable tokens.
func acceptFunc(q string, opts Options) func(string) bool {
	if opts.Phrase {
		phrase := strings.TrimSpace(textnorm.Normalize(q))
		if phrase == "" {
			return nil
		}
		return func(text string) bool {
			return strings.Contains(text, phrase)
		}
	}

	tokens := textnorm.Tokenize(q)
	if len(tokens) == 0 {
		return nil
	}
	return func(text string) bool {
		return ContainsAll(text, tokens)
	}
}

// ContainsAll reports whether every token is a substring of text.
func ContainsAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
