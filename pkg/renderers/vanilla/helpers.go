package vanilla

import (
	"html"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy

	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps basic formatting in member descriptions and
// strips scripts, handlers and unsafe URLs.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		descriptionPolicy = policy
	})
	return strings.TrimSpace(descriptionPolicy.Sanitize(trimmed))
}

// iconHTML renders an icon value. Inline SVG markup is sanitised; anything
// else is treated as a Font Awesome class list ("fa-home", "fa fa-cog").
func iconHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "<") {
		return sanitizeIconMarkup(trimmed)
	}

	var classes []string
	hasBase := false
	for _, token := range strings.Fields(trimmed) {
		if !iconClassToken(token) {
			continue
		}
		if token == "fa" || token == "fas" || token == "far" || token == "fab" {
			hasBase = true
		}
		classes = append(classes, token)
	}
	if len(classes) == 0 {
		return ""
	}
	if !hasBase {
		classes = append([]string{"fa"}, classes...)
	}
	return `<i class="` + html.EscapeString(strings.Join(classes, " ")) + `" aria-hidden="true"></i>`
}

func iconClassToken(token string) bool {
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return token != ""
}

func sanitizeIconMarkup(raw string) string {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon", "ellipse", "title")

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}
		policy.AllowAttrs("class").OnElements("g")

		iconPolicy = policy
	})
	return strings.TrimSpace(iconPolicy.Sanitize(raw))
}

// followHref routes absolute backend links through the local follow
// endpoint. Relative hrefs and fragments are left alone.
func followHref(prefix string) func(string) string {
	return func(href string) string {
		if prefix == "" {
			return href
		}
		parsed, err := url.Parse(href)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return href
		}
		return prefix + url.QueryEscape(href)
	}
}

// cssVarsStyle renders theme CSS variables as a :root rule. Keys and values
// that could break out of the declaration are skipped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		name := strings.TrimSpace(key)
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		if value == "" || strings.ContainsAny(name+value, "{};<>") {
			continue
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	}
	if b.Len() == 0 {
		return ""
	}
	return ":root {\n" + b.String() + "}"
}
