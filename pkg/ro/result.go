package ro

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// Result types reported by action results.
const (
	ResultObject = "domainobject"
	ResultList   = "list"
	ResultScalar = "scalar"
	ResultVoid   = "void"
)

// ActionResult wraps the outcome of invoking an action. Result is decoded on
// demand because its shape depends on ResultType.
type ActionResult struct {
	Links      []Link          `json:"links,omitempty"`
	ResultType string          `json:"resultType"`
	Result     json.RawMessage `json:"result,omitempty"`
}

// List is the RO list representation: a collection of links.
type List struct {
	Links      []Link     `json:"links,omitempty"`
	Value      []Link     `json:"value"`
	Extensions Extensions `json:"extensions,omitempty"`
}

// ScalarValue is the RO scalar-value representation.
type ScalarValue struct {
	Links []Link `json:"links,omitempty"`
	Value Value  `json:"value"`
}

// ParseActionResult decodes an action-result representation.
func ParseActionResult(data []byte) (ActionResult, error) {
	var out ActionResult
	if err := json.Unmarshal(data, &out); err != nil {
		return ActionResult{}, fmt.Errorf("ro: decode action result: %w", err)
	}
	return out, nil
}

// ParseList decodes a list representation.
func ParseList(data []byte) (List, error) {
	var out List
	if err := json.Unmarshal(data, &out); err != nil {
		return List{}, fmt.Errorf("ro: decode list: %w", err)
	}
	return out, nil
}

// ParseMember decodes a member (property, collection or action) representation.
func ParseMember(data []byte) (Member, error) {
	var out Member
	if err := json.Unmarshal(data, &out); err != nil {
		return Member{}, fmt.Errorf("ro: decode member: %w", err)
	}
	return out, nil
}

// Object decodes Result as a domain object.
func (r ActionResult) Object() (DomainObject, error) {
	if r.ResultType != ResultObject {
		return DomainObject{}, fmt.Errorf("ro: result type %q is not %q", r.ResultType, ResultObject)
	}
	return ParseObject(r.Result)
}

// List decodes Result as a list.
func (r ActionResult) List() (List, error) {
	if r.ResultType != ResultList {
		return List{}, fmt.Errorf("ro: result type %q is not %q", r.ResultType, ResultList)
	}
	return ParseList(r.Result)
}

// Scalar decodes Result as a scalar value.
func (r ActionResult) Scalar() (ScalarValue, error) {
	if r.ResultType != ResultScalar {
		return ScalarValue{}, fmt.Errorf("ro: result type %q is not %q", r.ResultType, ResultScalar)
	}
	var out ScalarValue
	if err := json.Unmarshal(r.Result, &out); err != nil {
		return ScalarValue{}, fmt.Errorf("ro: decode scalar: %w", err)
	}
	return out, nil
}

// RepresentationType names the RO representation a response carries.
type RepresentationType string

const (
	ReprUnknown      RepresentationType = ""
	ReprHomePage     RepresentationType = "homepage"
	ReprObject       RepresentationType = "object"
	ReprList         RepresentationType = "list"
	ReprAction       RepresentationType = "object-action"
	ReprActionResult RepresentationType = "action-result"
	ReprProperty     RepresentationType = "object-property"
	ReprLayout       RepresentationType = "layout"
	ReprMenubars     RepresentationType = "menubars"
	ReprError        RepresentationType = "error"
)

// ParseRepresentationType reads the profile parameter of an RO content type,
// e.g. application/json;profile="urn:org.restfulobjects:repr-types/object".
// Causeway layout and menu bar profiles are recognised as well.
func ParseRepresentationType(contentType string) RepresentationType {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ReprUnknown
	}
	profile := strings.Trim(params["profile"], `"`)
	switch {
	case profile == "":
		return ReprUnknown
	case strings.Contains(profile, "repr-types/"):
		_, repr, _ := strings.Cut(profile, "repr-types/")
		return RepresentationType(repr)
	case strings.Contains(profile, "/layout"):
		return ReprLayout
	case strings.Contains(profile, "/menubars"):
		return ReprMenubars
	default:
		return ReprUnknown
	}
}
