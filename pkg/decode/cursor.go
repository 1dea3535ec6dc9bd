package decode

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Cursor is positioned at a single JSON scalar (or null, or an embedded
// object) of unknown declared type.
type Cursor interface {
	// Peek returns the first significant byte of the payload, or 0 when the
	// cursor is empty.
	Peek() byte
	// DecodeInto attempts a typed decode. A failed attempt must leave the
	// cursor untouched so the next candidate can retry from the same point.
	DecodeInto(v any) error
}

// RawTextCursor exposes the remaining raw text at the cursor. The resolver
// uses it to recover strings the structured decoders reject.
type RawTextCursor interface {
	Cursor
	RawText() string
}

// BytesCursor is a Cursor over an immutable byte slice. Each decode attempt
// runs a fresh decoder over the same bytes.
type BytesCursor struct {
	raw []byte
}

var _ RawTextCursor = (*BytesCursor)(nil)

// NewCursor wraps raw bytes. The input does not have to be valid JSON; invalid
// payloads simply fail every structured decode.
func NewCursor(raw []byte) *BytesCursor {
	return &BytesCursor{raw: bytes.Clone(raw)}
}

// Peek implements Cursor.
func (c *BytesCursor) Peek() byte {
	if c == nil {
		return 0
	}
	trimmed := bytes.TrimLeft(c.raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// DecodeInto implements Cursor.
func (c *BytesCursor) DecodeInto(v any) error {
	if c == nil || len(bytes.TrimSpace(c.raw)) == 0 {
		return errors.New("decode: empty cursor")
	}
	dec := json.NewDecoder(bytes.NewReader(c.raw))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("decode: trailing data after value")
	}
	return nil
}

// RawText implements RawTextCursor.
func (c *BytesCursor) RawText() string {
	if c == nil {
		return ""
	}
	return string(c.raw)
}
