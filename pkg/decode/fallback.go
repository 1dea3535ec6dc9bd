package decode

import "strings"

// recoverString extracts a string from raw text that no structured candidate
// accepted. Bare literals (numbers with fractions, booleans, unterminated or
// single-quoted strings) yield their first comma-delimited token. Structured
// payloads yield the token following the marker field. Escapes and quotes are
// stripped. The second return is false when nothing usable is found.
func recoverString(raw, marker string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	switch trimmed[0] {
	case '{', '[':
		return markedToken(trimmed, marker)
	default:
		return cleanToken(trimmed)
	}
}

func markedToken(raw, marker string) (string, bool) {
	unescaped := strings.ReplaceAll(raw, `\`, "")
	key := `"` + marker + `"`
	idx := strings.Index(unescaped, key)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimSpace(unescaped[idx+len(key):])
	rest, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" || rest[0] == '{' || rest[0] == '[' {
		return "", false
	}
	return cleanToken(rest)
}

func cleanToken(s string) (string, bool) {
	s = strings.ReplaceAll(s, `\`, "")
	if idx := strings.IndexAny(s, ",}]\n"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return "", false
	}
	return s, true
}
