// Package classify decides which documents a raw message produces. The
// signals form an ordered rule table; kinds are independent, so a single
// message may yield a character sheet, a session entry, and a lore entry
// at once. A rule that can't fire for a message is simply skipped —
// classification never aborts the export.
package classify

import (
	"strings"

	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
	"github.com/bramtechsolutions/campaign-rag/pkg/export"
	"github.com/bramtechsolutions/campaign-rag/pkg/keywords"
)

// TypeCharacterDefinition is the explicit character tag some exports carry.
const TypeCharacterDefinition = "character_definition"

// loreChannel is the channel name marking world/lore messages.
const loreChannel = "lore"

// Result is one (kind, key, document) produced by a signal. Exactly one
// of Character, Entry, or World is set, matching Kind.
type Result struct {
	Kind corpus.Kind
	Key  string

	Character *corpus.Character
	Entry     *corpus.Entry
	World     *corpus.World
}

// rule pairs a signal predicate with a document builder. New hint shapes
// get a new rule rather than another branch in existing ones.
type rule struct {
	name  string
	match func(m *export.Message) bool
	build func(m *export.Message) (Result, bool)
}

var rules = []rule{
	{
		name: "character",
		match: func(m *export.Message) bool {
			return m.Type == TypeCharacterDefinition || m.HasSheet()
		},
		build: buildCharacter,
	},
	{
		name:  "session",
		match: func(m *export.Message) bool { return true },
		build: buildSessionEntry,
	},
	{
		name: "world",
		match: func(m *export.Message) bool {
			return strings.EqualFold(m.ChannelName(), loreChannel)
		},
		build: buildWorld,
	},
}

// Classify runs every rule against m and returns the produced results in
// rule order. First match wins per kind; missing fields make a rule skip,
// never fail.
func Classify(m *export.Message) []Result {
	results := make([]Result, 0, len(rules))
	for _, r := range rules {
		if !r.match(m) {
			continue
		}
		if res, ok := r.build(m); ok {
			results = append(results, res)
		}
	}
	return results
}

func buildCharacter(m *export.Message) (Result, bool) {
	name := m.Author.Name
	if name == "" {
		// No author to key on; skip this signal, not the message.
		return Result{}, false
	}
	return Result{
		Kind: corpus.KindCharacter,
		Key:  corpus.CharacterKey(name),
		Character: &corpus.Character{
			SourceID:  string(m.ID),
			Name:      name,
			Sheet:     m.Content,
			Timestamp: m.Timestamp,
		},
	}, true
}

func buildSessionEntry(m *export.Message) (Result, bool) {
	return Result{
		Kind: corpus.KindSession,
		Key:  m.Date(),
		Entry: &corpus.Entry{
			ID:        string(m.ID),
			Author:    m.Author.Name,
			Text:      m.Content,
			Timestamp: m.Timestamp,
		},
	}, true
}

func buildWorld(m *export.Message) (Result, bool) {
	return Result{
		Kind: corpus.KindWorld,
		Key:  corpus.WorldKey(m.Content),
		World: &corpus.World{
			SourceID:  string(m.ID),
			Title:     corpus.WorldKey(m.Content),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Keywords:  keywords.Derive(m.Content, keywords.DefaultMax),
		},
	}, true
}
