// Package domain contains core business entities and interfaces.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TaskID is the opaque identifier assigned by the task store.
// It holds the raw JSON literal (a number or a string) so it round-trips exactly.
type TaskID string

// String returns the textual form of the ID, without JSON quoting.
func (id TaskID) String() string {
	if len(id) >= 2 && id[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return string(id)
}

// MarshalJSON emits the literal as received.
func (id TaskID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// UnmarshalJSON keeps the literal as received.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	*id = TaskID(bytes.TrimSpace(data))
	return nil
}

// ParseTaskID turns user input into a TaskID.
// Integers become numeric literals, anything else a JSON string.
func ParseTaskID(s string) TaskID {
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return TaskID(s)
	}
	quoted, _ := EncodeJSON(s)
	return TaskID(quoted)
}

// Task is a record owned by the external task store.
// The client only holds a cached copy; fields the client does not know about
// are retained verbatim so a full-record update sends them back unchanged.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time                  // Server-assigned creation time (zero if absent)
	raw         map[string]json.RawMessage // Record as received, nil for locally built tasks
	keys        []string                   // Field names of raw in received order
	ID          TaskID                     // Opaque server ID
	Title       string                     // Title (required)
	Description string                     // Description (optional)
	Completed   bool                       // Completion flag
}

// Wire field names.
const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldCompleted   = "completed"
	fieldCreatedAt   = "created_at"
)

// UnmarshalJSON decodes a task and keeps every field of the record,
// in received order and with its value bytes untouched.
func (t *Task) UnmarshalJSON(data []byte) error {
	raw, keys, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out Task
	out.raw = raw
	out.keys = keys
	if v, ok := raw[fieldID]; ok {
		out.ID = TaskID(bytes.TrimSpace(v))
	}
	if v, ok := raw[fieldTitle]; ok {
		if err := decodeOptional(v, &out.Title); err != nil {
			return fmt.Errorf("decode title: %w", err)
		}
	}
	if v, ok := raw[fieldDescription]; ok {
		if err := decodeOptional(v, &out.Description); err != nil {
			return fmt.Errorf("decode description: %w", err)
		}
	}
	if v, ok := raw[fieldCompleted]; ok {
		if err := decodeOptional(v, &out.Completed); err != nil {
			return fmt.Errorf("decode completed: %w", err)
		}
	}
	if v, ok := raw[fieldCreatedAt]; ok {
		var s string
		// created_at is display-only; an unparseable value renders as no date.
		if err := json.Unmarshal(v, &s); err == nil {
			out.CreatedAt = parseTimestamp(s)
		}
	}

	*t = out
	return nil
}

// MarshalJSON encodes the full record.
// Known fields take their current values; every other field is written back
// with the exact bytes received, in received order. Strings are not HTML-escaped.
func (t Task) MarshalJSON() ([]byte, error) {
	values := make(map[string]json.RawMessage, len(t.raw)+5)
	for k, v := range t.raw {
		values[k] = v
	}
	keys := append([]string(nil), t.keys...)
	set := func(name string, v json.RawMessage) {
		if _, ok := values[name]; !ok {
			keys = append(keys, name)
		}
		values[name] = v
	}

	if t.ID != "" {
		if prev, ok := t.raw[fieldID]; !ok || !bytes.Equal(bytes.TrimSpace(prev), []byte(t.ID)) {
			set(fieldID, json.RawMessage(t.ID))
		}
	}
	title, titleChanged, err := encodeField(t.raw, fieldTitle, t.Title)
	if err != nil {
		return nil, err
	}
	desc, descChanged, err := encodeField(t.raw, fieldDescription, t.Description)
	if err != nil {
		return nil, err
	}
	completed, completedChanged, err := encodeField(t.raw, fieldCompleted, t.Completed)
	if err != nil {
		return nil, err
	}
	if titleChanged {
		set(fieldTitle, title)
	}
	if descChanged {
		set(fieldDescription, desc)
	}
	if completedChanged {
		set(fieldCompleted, completed)
	}
	if _, ok := t.raw[fieldCreatedAt]; !ok && !t.CreatedAt.IsZero() {
		b, err := EncodeJSON(t.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return nil, err
		}
		set(fieldCreatedAt, b)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := EncodeJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Toggled returns a copy of the task with Completed inverted.
// Every other field, including unknown ones, is left byte-for-byte as received.
func (t *Task) Toggled() *Task {
	c := t.Clone()
	c.Completed = !t.Completed
	return c
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.keys = append([]string(nil), t.keys...)
	if t.raw != nil {
		c.raw = make(map[string]json.RawMessage, len(t.raw))
		for k, v := range t.raw {
			c.raw[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}

// Field returns the raw JSON value of a field as received from the store.
func (t *Task) Field(name string) (json.RawMessage, bool) {
	v, ok := t.raw[name]
	return v, ok
}

// CreateTaskRequest is the body sent to create a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// encodeField encodes a known field. When the received value decodes to the
// same value, changed is false and the received bytes stay in place.
func encodeField[T comparable](raw map[string]json.RawMessage, name string, value T) (json.RawMessage, bool, error) {
	if prev, ok := raw[name]; ok {
		var old T
		if err := json.Unmarshal(prev, &old); err == nil && old == value {
			return nil, false, nil
		}
	}
	b, err := EncodeJSON(value)
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", name, err)
	}
	return b, true, nil
}

// EncodeJSON encodes v without HTML escaping and without a trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeObject splits a JSON object into its raw member values and key order.
func decodeObject(data []byte) (map[string]json.RawMessage, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("task must be a JSON object, got %v", tok)
	}

	raw := make(map[string]json.RawMessage)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", key, err)
		}
		if _, seen := raw[key]; !seen {
			keys = append(keys, key)
		}
		raw[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return raw, keys, nil
}

// decodeOptional decodes v into dst, treating JSON null as the zero value.
func decodeOptional(v json.RawMessage, dst any) error {
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	return json.Unmarshal(v, dst)
}

// timestampLayouts lists the formats accepted for created_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
