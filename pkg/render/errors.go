package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-kroviz/pkg/widget"
)

// FormErrorKey collects messages that do not belong to a member.
const FormErrorKey = "x-ro-invalidReason"

// ErrorMapping splits invalid reasons into member-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// InvalidReasons extracts messages from an RO validation failure body. Each
// argument or property entry may carry an invalidReason; the top-level
// x-ro-invalidReason is kept under FormErrorKey.
func InvalidReasons(body []byte) (map[string][]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("render: decode invalid reasons: %w", err)
	}

	out := make(map[string][]string)
	for key, payload := range raw {
		if key == FormErrorKey {
			var message string
			if err := json.Unmarshal(payload, &message); err == nil && message != "" {
				out[key] = append(out[key], message)
			}
			continue
		}
		var entry struct {
			InvalidReason string `json:"invalidReason"`
		}
		if err := json.Unmarshal(payload, &entry); err != nil || entry.InvalidReason == "" {
			continue
		}
		out[key] = append(out[key], entry.InvalidReason)
	}
	return out, nil
}

// MapInvalidReasons normalises invalid-reason keys (member ids, JSON pointer
// paths such as /members/name/value, dotted paths) onto the members bound
// in the tree. Unknown keys become form-level errors so messages are not
// lost.
func MapInvalidReasons(root *widget.Widget, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	members := make(map[string]struct{})
	root.Walk(func(node *widget.Widget, _ int) bool {
		if id := node.Attr(widget.AttrMember); id != "" {
			members[id] = struct{}{}
		}
		return true
	})

	for key, messages := range payload {
		cleaned := normalizeMessages(messages)
		if len(cleaned) == 0 {
			continue
		}
		member, ok := matchMember(key, members)
		if !ok {
			mapping.Form = append(mapping.Form, cleaned...)
			continue
		}
		mapping.Fields[member] = append(mapping.Fields[member], cleaned...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// matchMember returns the first segment of the key that names a bound
// member, after dropping RO wrapper segments and array indexes.
func matchMember(key string, members map[string]struct{}) (string, bool) {
	if isFormLevelKey(key) {
		return "", false
	}
	for _, segment := range pathSegments(key) {
		if _, wrapper := wrapperSegments[strings.ToLower(segment)]; wrapper {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if _, ok := members[segment]; ok {
			return segment, true
		}
		return "", false
	}
	return "", false
}

var wrapperSegments = map[string]struct{}{
	"members":    {},
	"properties": {},
	"parameters": {},
	"arguments":  {},
	"body":       {},
}

func pathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", strings.ToLower(FormErrorKey):
		return true
	default:
		return false
	}
}
