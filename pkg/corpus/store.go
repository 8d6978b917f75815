// Package corpus holds the three-partition document store produced by
// ingestion and read by the query engines. Ingestion builds a fresh
// Snapshot and publishes it atomically; readers always observe either the
// fully-old or fully-new corpus, never a half-rebuilt one.
package corpus

import (
	"sync"
)

// Counts reports how many documents each partition holds.
type Counts struct {
	Characters int `json:"characters"`
	Sessions   int `json:"sessions"`
	World      int `json:"world"`
}

// Snapshot is one immutable generation of the corpus. It must not be
// mutated after publication.
type Snapshot struct {
	Characters map[string]Character
	Sessions   map[string]Session
	World      map[string]World
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Characters: make(map[string]Character),
		Sessions:   make(map[string]Session),
		World:      make(map[string]World),
	}
}

// Counts returns per-partition document counts.
func (s *Snapshot) Counts() Counts {
	return Counts{
		Characters: len(s.Characters),
		Sessions:   len(s.Sessions),
		World:      len(s.World),
	}
}

// Builder accumulates documents for the next snapshot. Character and
// world writes are last-write-wins by key; session entries aggregate per
// date in insertion order and are finalized by Snapshot.
type Builder struct {
	snap    *Snapshot
	entries map[string][]Entry
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		snap:    NewSnapshot(),
		entries: make(map[string][]Entry),
	}
}

// PutCharacter stores c under key, overwriting any earlier character with
// the same key.
func (b *Builder) PutCharacter(key string, c Character) {
	c.SearchText = searchable(c.Sheet)
	b.snap.Characters[key] = c
}

// PutWorld stores w under key, overwriting any earlier entry with the
// same derived title.
func (b *Builder) PutWorld(key string, w World) {
	w.SearchText = searchable(w.Content)
	b.snap.World[key] = w
}

// AddSessionEntry appends e to the session bucket for date.
func (b *Builder) AddSessionEntry(date string, e Entry) {
	b.entries[date] = append(b.entries[date], e)
}

// Snapshot finalizes one Session document per distinct date and returns
// the built snapshot. The builder must not be reused afterwards.
func (b *Builder) Snapshot() *Snapshot {
	for date, entries := range b.entries {
		sess := Session{Date: date, Entries: entries}
		sess.SearchText = searchable(sess.Text())
		b.snap.Sessions[date] = sess
	}
	return b.snap
}

// Store publishes corpus snapshots to readers. Ingestion is the only
// writer; queries grab the current snapshot pointer and read it lock-free.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a store holding an empty corpus.
func NewStore() *Store {
	return &Store{snap: NewSnapshot()}
}

// Replace atomically publishes snap as the current corpus, discarding
// every document of the previous generation.
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
}

// Snapshot returns the currently published corpus.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}

// Counts returns per-partition counts of the current corpus.
func (s *Store) Counts() Counts {
	return s.Snapshot().Counts()
}
