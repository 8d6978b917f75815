package store

import (
	"encoding/json"
	"fmt"

	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
)

// dump is the portable serialized form of the whole store.
type dump struct {
	Characters map[string]corpus.Character `json:"characters"`
	Sessions   map[string]corpus.Session   `json:"sessions"`
	World      map[string]corpus.World     `json:"world"`
}

// Export serializes all partitions to JSON bytes. The format is portable
// and does not depend on SQLite serialization APIs.
func (s *Store) Export() ([]byte, error) {
	snap, err := s.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("export corpus: %w", err)
	}
	return json.Marshal(dump{
		Characters: snap.Characters,
		Sessions:   snap.Sessions,
		World:      snap.World,
	})
}

// Import restores the store from an exported JSON byte slice, replacing
// all existing data.
func (s *Store) Import(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var d dump
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	b := corpus.NewBuilder()
	for key, c := range d.Characters {
		b.PutCharacter(key, c)
	}
	for date, sess := range d.Sessions {
		for _, e := range sess.Entries {
			b.AddSessionEntry(date, e)
		}
	}
	for key, w := range d.World {
		b.PutWorld(key, w)
	}
	return s.ReplaceAll(b.Snapshot())
}
