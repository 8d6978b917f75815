package corpus

import (
	"strings"

	"github.com/bramtechsolutions/campaign-rag/pkg/textnorm"
)

// Kind identifies which partition a document lives in.
type Kind string

const (
	KindCharacter Kind = "character"
	KindSession   Kind = "session"
	KindWorld     Kind = "world"
)

// worldTitleMax caps the derived lore title length.
const worldTitleMax = 50

// Character is one player/NPC sheet, keyed by author name.
type Character struct {
	SourceID  string `json:"sourceId"`
	Name      string `json:"name"`
	Sheet     string `json:"sheet"`
	Timestamp string `json:"timestamp"`

	// SearchText is the normalized sheet text, derived at snapshot build.
	SearchText string `json:"-"`
}

// Entry is a single message inside a session transcript.
type Entry struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Session is one calendar day of play, keyed by YYYY-MM-DD.
// Entries keep the order messages were encountered, not time-of-day order.
type Session struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`

	SearchText string `json:"-"`
}

// Text returns the raw concatenated entry texts.
func (s Session) Text() string {
	parts := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, "\n")
}

// World is one lore entry, keyed by its derived title.
type World struct {
	SourceID  string   `json:"sourceId"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
	Keywords  []string `json:"keywords,omitempty"`

	SearchText string `json:"-"`
}

// CharacterKey derives the character partition key from an author name.
func CharacterKey(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// WorldKey derives the lore partition key from message content: the first
// line, truncated to 50 characters, spaces replaced by underscores.
// Empty content yields an empty (degenerate) key, which is still accepted.
func WorldKey(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if runes := []rune(line); len(runes) > worldTitleMax {
		line = string(runes[:worldTitleMax])
	}
	return strings.ReplaceAll(line, " ", "_")
}

// searchable returns the normalized comparable form of a document's text.
func searchable(text string) string {
	return textnorm.Normalize(text)
}
