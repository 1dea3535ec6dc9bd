// Package decode resolves untagged JSON unions. A Resolver tries an ordered
// list of candidates against a Cursor and returns the first one whose shape
// predicate and decode both succeed. Failed attempts never move the cursor, so
// every candidate starts from the same position.
//
// When every candidate rejects the payload, the resolver can recover a string
// from the raw text exposed by cursors implementing RawTextCursor. Cursors that
// do not expose raw text, and payloads with nothing recoverable, fail with
// ErrUnrecognizedScalar; the resolver never substitutes an empty string.
package decode
