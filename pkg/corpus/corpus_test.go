package corpus

import (
	"testing"
)

func TestCharacterKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Mira Stone", "Mira_Stone"},
		{"Solo", "Solo"},
		{"A B C", "A_B_C"},
	}
	for _, tc := range tests {
		if got := CharacterKey(tc.name); got != tc.expected {
			t.Errorf("CharacterKey(%q) = %q, want %q", tc.name, got, tc.expected)
		}
	}
}

func TestWorldKey(t *testing.T) {
	tests := []struct {
		content  string
		expected string
	}{
		{"The Sunken Tower\nAn old ruin beneath the lake.", "The_Sunken_Tower"},
		{"Short title", "Short_title"},
		{"", ""},
		// First line longer than 50 runes truncates.
		{
			"A very long lore title that keeps going well past the cutoff point",
			"A_very_long_lore_title_that_keeps_going_well_past_",
		},
	}
	for _, tc := range tests {
		if got := WorldKey(tc.content); got != tc.expected {
			t.Errorf("WorldKey(%q) = %q, want %q", tc.content, got, tc.expected)
		}
	}
}

func TestBuilderLastWriteWins(t *testing.T) {
	b := NewBuilder()
	b.PutCharacter("Mira_Stone", Character{Name: "Mira Stone", Sheet: "old sheet"})
	b.PutCharacter("Mira_Stone", Character{Name: "Mira Stone", Sheet: "new sheet"})

	snap := b.Snapshot()
	if len(snap.Characters) != 1 {
		t.Fatalf("expected 1 character, got %d", len(snap.Characters))
	}
	if snap.Characters["Mira_Stone"].Sheet != "new sheet" {
		t.Errorf("expected last write to win, got %q", snap.Characters["Mira_Stone"].Sheet)
	}
}

func TestBuilderDerivesSearchText(t *testing.T) {
	b := NewBuilder()
	b.PutCharacter("Mira_Stone", Character{Name: "Mira Stone", Sheet: "Green Eyes!"})
	b.PutWorld("The_Tower", World{Title: "The_Tower", Content: "An OLD ruin."})

	snap := b.Snapshot()
	if got := snap.Characters["Mira_Stone"].SearchText; got != "green eyes" {
		t.Errorf("character SearchText = %q, want %q", got, "green eyes")
	}
	if got := snap.World["The_Tower"].SearchText; got != "an old ruin" {
		t.Errorf("world SearchText = %q, want %q", got, "an old ruin")
	}
}

func TestBuilderSessionAggregation(t *testing.T) {
	b := NewBuilder()
	b.AddSessionEntry("2024-05-01", Entry{ID: "1", Text: "first"})
	b.AddSessionEntry("2024-05-02", Entry{ID: "2", Text: "other day"})
	b.AddSessionEntry("2024-05-01", Entry{ID: "3", Text: "second"})

	snap := b.Snapshot()
	if len(snap.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(snap.Sessions))
	}

	sess := snap.Sessions["2024-05-01"]
	if len(sess.Entries) != 2 {
		t.Fatalf("expected 2 entries on 2024-05-01, got %d", len(sess.Entries))
	}
	// Insertion order preserved.
	if sess.Entries[0].ID != "1" || sess.Entries[1].ID != "3" {
		t.Errorf("entry order wrong: %v", sess.Entries)
	}
	if sess.Text() != "first\nsecond" {
		t.Errorf("Session.Text() = %q, want %q", sess.Text(), "first\nsecond")
	}
	if sess.SearchText != "first\nsecond" {
		t.Errorf("Session.SearchText = %q, want %q", sess.SearchText, "first\nsecond")
	}
}

func TestStoreReplace(t *testing.T) {
	s := NewStore()
	if c := s.Counts(); c.Characters != 0 || c.Sessions != 0 || c.World != 0 {
		t.Fatalf("new store not empty: %+v", c)
	}

	old := s.Snapshot()

	b := NewBuilder()
	b.PutCharacter("Mira_Stone", Character{Name: "Mira Stone"})
	b.AddSessionEntry("2024-05-01", Entry{Text: "hello"})
	s.Replace(b.Snapshot())

	c := s.Counts()
	if c.Characters != 1 || c.Sessions != 1 {
		t.Errorf("counts after replace = %+v", c)
	}

	// The previously grabbed snapshot is unaffected by the swap.
	if len(old.Characters) != 0 {
		t.Error("old snapshot mutated by Replace")
	}
}
