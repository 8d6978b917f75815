// Package answer is the fact-extraction API: unlike search.Engine, which
// returns every match, it stops at the first document whose text covers
// the query tokens and pulls a single short answer out of it.
package answer

import (
	"regexp"
	"strings"

	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
	"github.com/bramtechsolutions/campaign-rag/pkg/search"
	"github.com/bramtechsolutions/campaign-rag/pkg/textnorm"
)

// Answer is the single-best-match response. Answer is empty when no
// document matched, or when an intent extractor found nothing.
type Answer struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}

// intent pairs a trigger keyword with its extractor, mirroring the
// classifier's rule-table shape. First trigger present in the normalized
// query wins; no trigger falls back to echoing the source.
type intent struct {
	keyword string
	extract func(text string) string
}

var intents = []intent{
	{keyword: "eyes", extract: ExtractEyeColor},
	{keyword: "instrument", extract: ExtractInstrument},
}

// eyePattern captures the word directly before "eyes".
var eyePattern = regexp.MustCompile(`(?i)(\w+)\s+eyes`)

// ExtractEyeColor scans text for "<word> eyes" and returns the captured
// word, or "" when absent.
func ExtractEyeColor(text string) string {
	m := eyePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// Engine resolves fact queries against the published corpus snapshot.
type Engine struct {
	store *corpus.Store
}

// NewEngine creates an engine reading from store.
func NewEngine(store *corpus.Store) *Engine {
	return &Engine{store: store}
}

// Ask normalizes q, finds the first document in partition order whose
// normalized text contains every filtered query token, and extracts an
// answer according to the query's intent keyword. Without a recognized
// intent the raw matched text is echoed back as the answer, and Source
// carries the same text rather than being omitted. No match (or an empty
// token set) yields an Answer with no answer and no source.
func (e *Engine) Ask(q string) Answer {
	tokens := textnorm.Tokenize(q)
	if len(tokens) == 0 {
		return Answer{Query: q}
	}

	text, ok := e.firstMatch(tokens)
	if !ok {
		return Answer{Query: q}
	}
	source := strings.TrimSpace(text)

	norm := textnorm.Normalize(q)
	for _, in := range intents {
		if strings.Contains(norm, in.keyword) {
			return Answer{Query: q, Answer: in.extract(text), Source: source}
		}
	}
	return Answer{Query: q, Answer: source, Source: source}
}

// firstMatch returns the raw text of the first matching document in the
// fixed partition scan order: characters, sessions, world.
func (e *Engine) firstMatch(tokens []string) (string, bool) {
	snap := e.store.Snapshot()

	for _, c := range snap.Characters {
		if search.ContainsAll(c.SearchText, tokens) {
			return c.Sheet, true
		}
	}
	for _, s := range snap.Sessions {
		if search.ContainsAll(s.SearchText, tokens) {
			return s.Text(), true
		}
	}
	for _, w := range snap.World {
		if search.ContainsAll(w.SearchText, tokens) {
			return w.Content, true
		}
	}
	return "", false
}
