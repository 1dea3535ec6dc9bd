package ro

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Member types reported by RO.
const (
	MemberProperty   = "property"
	MemberCollection = "collection"
	MemberAction     = "action"
)

// Extensions holds the representation extensions kroviz uses. Unknown keys
// are ignored.
type Extensions struct {
	OID             string `json:"oid,omitempty"`
	FriendlyName    string `json:"friendlyName,omitempty"`
	Description     string `json:"description,omitempty"`
	Plural          string `json:"pluralName,omitempty"`
	ReturnType      string `json:"returnType,omitempty"`
	ElementType     string `json:"elementType,omitempty"`
	ActionSemantics string `json:"actionSemantics,omitempty"`
	ActionType      string `json:"actionType,omitempty"`
	Format          string `json:"x-causeway-format,omitempty"`
	IsService       bool   `json:"isService,omitempty"`
	IsPersistent    bool   `json:"isPersistent,omitempty"`
}

// Member is a property, collection or action of a domain object.
type Member struct {
	ID             string            `json:"id"`
	MemberType     string            `json:"memberType"`
	Links          []Link            `json:"links,omitempty"`
	Value          Value             `json:"value"`
	Format         string            `json:"format,omitempty"`
	Extensions     Extensions        `json:"extensions,omitempty"`
	DisabledReason string            `json:"disabledReason,omitempty"`
	InvalidReason  string            `json:"invalidReason,omitempty"`
	Optional       bool              `json:"optional,omitempty"`
	Parameters     map[string]Member `json:"parameters,omitempty"`
}

// Label returns the friendly name, falling back to the id.
func (m Member) Label() string {
	if m.Extensions.FriendlyName != "" {
		return m.Extensions.FriendlyName
	}
	return m.ID
}

// Disabled reports whether the server marked the member read-only.
func (m Member) Disabled() bool {
	return m.DisabledReason != ""
}

// DomainObject is the RO object representation.
type DomainObject struct {
	Links      []Link            `json:"links,omitempty"`
	Extensions Extensions        `json:"extensions,omitempty"`
	Title      string            `json:"title"`
	DomainType string            `json:"domainType,omitempty"`
	InstanceID string            `json:"instanceId,omitempty"`
	ServiceID  string            `json:"serviceId,omitempty"`
	Members    map[string]Member `json:"members,omitempty"`
}

// ParseObject decodes an object representation. Member value errors
// (decode.ErrUnrecognizedScalar) propagate unchanged.
func ParseObject(data []byte) (DomainObject, error) {
	var obj DomainObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return DomainObject{}, fmt.Errorf("ro: decode object: %w", err)
	}
	return obj, nil
}

// Self returns the object's self link.
func (o DomainObject) Self() (Link, bool) {
	return FindLink(o.Links, RelSelf)
}

// LayoutLink returns the object-layout link, when the server provides one.
func (o DomainObject) LayoutLink() (Link, bool) {
	return FindLink(o.Links, RelObjectLayout)
}

// Member looks a member up by id.
func (o DomainObject) Member(id string) (Member, bool) {
	m, ok := o.Members[id]
	return m, ok
}

// MembersOf returns the members of one type sorted by id.
func (o DomainObject) MembersOf(memberType string) []Member {
	out := make([]Member, 0, len(o.Members))
	for _, m := range o.Members {
		if m.MemberType == memberType {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
