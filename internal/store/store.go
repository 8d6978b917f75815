// Package store provides SQLite-backed persistence for the corpus.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
// Each document kind gets its own partition (table); records are flat and
// round-trip the corpus field sets exactly.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
)

// Store is the SQLite-backed document store. Thread-safe.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines one table per document kind, plus the session entry
// rows whose seq column preserves insertion order.
const schema = `
CREATE TABLE IF NOT EXISTS characters (
    key TEXT PRIMARY KEY,
    source_id TEXT,
    name TEXT NOT NULL,
    sheet TEXT NOT NULL,
    timestamp TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sessions (
    date TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS session_entries (
    session_date TEXT NOT NULL,
    seq INTEGER NOT NULL,
    message_id TEXT,
    author TEXT NOT NULL DEFAULT '',
    text TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (session_date, seq)
);

CREATE INDEX IF NOT EXISTS idx_session_entries_date ON session_entries(session_date);

CREATE TABLE IF NOT EXISTS world (
    key TEXT PRIMARY KEY,
    source_id TEXT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    timestamp TEXT NOT NULL DEFAULT '',
    keywords TEXT
);
`

// New opens a store at dsn. Use ":memory:" for in-memory or a file path
// for persistent storage.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceAll clears every partition and repopulates it from snap in a
// single transaction, so the persisted corpus is always exactly one
// ingestion generation.
func (s *Store) ReplaceAll(snap *corpus.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"characters", "sessions", "session_entries", "world"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for key, c := range snap.Characters {
		_, err := tx.Exec(`
			INSERT INTO characters (key, source_id, name, sheet, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`, key, c.SourceID, c.Name, c.Sheet, c.Timestamp)
		if err != nil {
			return fmt.Errorf("insert character %s: %w", key, err)
		}
	}

	for date, sess := range snap.Sessions {
		if _, err := tx.Exec(`INSERT INTO sessions (date) VALUES (?)`, date); err != nil {
			return fmt.Errorf("insert session %s: %w", date, err)
		}
		for i, e := range sess.Entries {
			_, err := tx.Exec(`
				INSERT INTO session_entries (session_date, seq, message_id, author, text, timestamp)
				VALUES (?, ?, ?, ?, ?, ?)
			`, date, i, e.ID, e.Author, e.Text, e.Timestamp)
			if err != nil {
				return fmt.Errorf("insert session entry %s/%d: %w", date, i, err)
			}
		}
	}

	for key, w := range snap.World {
		keywordsJSON, err := json.Marshal(w.Keywords)
		if err != nil {
			return fmt.Errorf("marshal keywords for %s: %w", key, err)
		}
		_, err = tx.Exec(`
			INSERT INTO world (key, source_id, title, content, timestamp, keywords)
			VALUES (?, ?, ?, ?, ?, ?)
		`, key, w.SourceID, w.Title, w.Content, w.Timestamp, string(keywordsJSON))
		if err != nil {
			return fmt.Errorf("insert world %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// LoadAll reads every persisted document back into a corpus snapshot.
func (s *Store) LoadAll() (*corpus.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := corpus.NewBuilder()

	rows, err := s.db.Query(`SELECT key, source_id, name, sheet, timestamp FROM characters`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var c corpus.Character
		var sourceID sql.NullString
		if err := rows.Scan(&key, &sourceID, &c.Name, &c.Sheet, &c.Timestamp); err != nil {
			return nil, err
		}
		c.SourceID = sourceID.String
		b.PutCharacter(key, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entryRows, err := s.db.Query(`
		SELECT session_date, message_id, author, text, timestamp
		FROM session_entries ORDER BY session_date, seq
	`)
	if err != nil {
		return nil, err
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var date string
		var e corpus.Entry
		var messageID sql.NullString
		if err := entryRows.Scan(&date, &messageID, &e.Author, &e.Text, &e.Timestamp); err != nil {
			return nil, err
		}
		e.ID = messageID.String
		b.AddSessionEntry(date, e)
	}
	if err := entryRows.Err(); err != nil {
		return nil, err
	}

	worldRows, err := s.db.Query(`SELECT key, source_id, title, content, timestamp, keywords FROM world`)
	if err != nil {
		return nil, err
	}
	defer worldRows.Close()
	for worldRows.Next() {
		var key string
		var w corpus.World
		var sourceID, keywordsJSON sql.NullString
		if err := worldRows.Scan(&key, &sourceID, &w.Title, &w.Content, &w.Timestamp, &keywordsJSON); err != nil {
			return nil, err
		}
		w.SourceID = sourceID.String
		if keywordsJSON.String != "" {
			if err := json.Unmarshal([]byte(keywordsJSON.String), &w.Keywords); err != nil {
				w.Keywords = nil
			}
		}
		b.PutWorld(key, w)
	}
	if err := worldRows.Err(); err != nil {
		return nil, err
	}

	return b.Snapshot(), nil
}

// Counts returns per-partition document counts straight from SQLite.
func (s *Store) Counts() (corpus.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts corpus.Counts
	if err := s.db.QueryRow("SELECT COUNT(*) FROM characters").Scan(&counts.Characters); err != nil {
		return counts, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&counts.Sessions); err != nil {
		return counts, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM world").Scan(&counts.World); err != nil {
		return counts, err
	}
	return counts, nil
}
