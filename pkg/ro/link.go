package ro

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-kroviz/pkg/decode"
)

// Well-known link relations. Causeway-specific relations share the
// urn:org.apache.causeway prefix.
const (
	RelSelf         = "self"
	RelUp           = "up"
	RelDescribedBy  = "describedby"
	RelDetails      = "urn:org.restfulobjects:rels/details"
	RelInvoke       = "urn:org.restfulobjects:rels/invoke"
	RelValue        = "urn:org.restfulobjects:rels/value"
	RelObjectLayout = "urn:org.restfulobjects:rels/object-layout"
	RelMenuBars     = "urn:org.restfulobjects:rels/menuBars"
)

// Link is a hypermedia reference embedded in every representation.
type Link struct {
	Rel       string              `json:"rel,omitempty" yaml:"rel,omitempty" xml:"rel,omitempty"`
	Method    string              `json:"method,omitempty" yaml:"method,omitempty" xml:"method,omitempty"`
	Href      string              `json:"href" yaml:"href" xml:"href"`
	Type      string              `json:"type,omitempty" yaml:"type,omitempty" xml:"type,omitempty"`
	Title     string              `json:"title,omitempty" yaml:"title,omitempty" xml:"title,omitempty"`
	Arguments map[string]Argument `json:"arguments,omitempty" yaml:"arguments,omitempty" xml:"-"`
}

// Argument is a single entry of a link's argument map.
type Argument struct {
	Value Value `json:"value"`
}

// HasRel reports whether the relation matches. Causeway decorates relations
// with parameters (`rel;action="x"`); only the part before ';' is compared.
func (l Link) HasRel(rel string) bool {
	base, _, _ := strings.Cut(l.Rel, ";")
	return base == rel
}

// IsZero reports whether the link carries no target.
func (l Link) IsZero() bool {
	return strings.TrimSpace(l.Href) == ""
}

// FindLink returns the first link with the requested relation.
func FindLink(links []Link, rel string) (Link, bool) {
	for _, link := range links {
		if link.HasRel(rel) {
			return link, true
		}
	}
	return Link{}, false
}

// isLinkShape accepts JSON objects carrying a non-empty string href. Other
// keys (rel, method, type, title, arguments) are optional.
func isLinkShape(cur decode.Cursor) bool {
	if cur.Peek() != '{' {
		return false
	}
	var probe map[string]json.RawMessage
	if err := cur.DecodeInto(&probe); err != nil {
		return false
	}
	raw, ok := probe["href"]
	if !ok {
		return false
	}
	var href string
	if err := json.Unmarshal(raw, &href); err != nil {
		return false
	}
	return strings.TrimSpace(href) != ""
}
