// Package export defines the raw message schema of a chat export and the
// tolerant decoding rules for it. All optional-field defaulting happens
// here, once, at parse time; downstream classification never touches raw
// JSON again.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput reports an export whose top-level structure is not an
// object carrying a messages array. It is fatal to the ingestion call.
var ErrMalformedInput = errors.New("export: malformed input")

// DateUnknown is the session date for messages with a missing or short
// timestamp.
const DateUnknown = "unknown"

// ID is an opaque message identifier. Exports drift between numeric and
// string ids, so both decode to the string form.
type ID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Author is the nested author shape. Only the name is used.
type Author struct {
	Name string `json:"name"`
}

// Channel is the nested channel hint shape.
type Channel struct {
	Name string `json:"name"`
}

// Message is one raw record of the export. Missing optional fields decode
// to zero values; nothing here ever aborts classification.
type Message struct {
	ID        ID     `json:"id"`
	Author    Author `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`

	// Classification hints.
	Type        string          `json:"type"`
	Sheet       json.RawMessage `json:"sheet"`
	Channel     *Channel        `json:"channel"`
	ChannelType string          `json:"channel_type"`
}

// HasSheet reports whether the message carries a sheet-shaped payload.
func (m *Message) HasSheet() bool {
	raw := bytes.TrimSpace(m.Sheet)
	return len(raw) > 0 && string(raw) != "null"
}

// ChannelName reconciles the two channel hint shapes: the nested
// channel.name field wins, the flat channel_type field is the fallback.
func (m *Message) ChannelName() string {
	if m.Channel != nil && m.Channel.Name != "" {
		return m.Channel.Name
	}
	return m.ChannelType
}

// Date returns the calendar date of the message: the first 10 characters
// of the timestamp, or DateUnknown when the timestamp is shorter.
func (m *Message) Date() string {
	if len(m.Timestamp) < 10 {
		return DateUnknown
	}
	return m.Timestamp[:10]
}

// Export is one parsed export run.
type Export struct {
	Messages []Message
}

// Parse decodes data into an Export. The top level must be a JSON object
// with a "messages" array or ErrMalformedInput is returned. Individual
// messages that fail to decode are skipped, not fatal.
func Parse(data []byte) (*Export, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	rawMessages, ok := top["messages"]
	if !ok || string(bytes.TrimSpace(rawMessages)) == "null" {
		return nil, fmt.Errorf("%w: missing messages field", ErrMalformedInput)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawMessages, &items); err != nil {
		return nil, fmt.Errorf("%w: messages is not an array", ErrMalformedInput)
	}

	exp := &Export{Messages: make([]Message, 0, len(items))}
	for _, item := range items {
		var m Message
		if err := json.Unmarshal(item, &m); err != nil {
			// Skip malformed records, keep processing the rest.
			continue
		}
		m.Author.Name = strings.TrimSpace(m.Author.Name)
		exp.Messages = append(exp.Messages, m)
	}
	return exp, nil
}
