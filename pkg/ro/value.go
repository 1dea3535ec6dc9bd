package ro

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-kroviz/pkg/decode"
)

// ValueKind identifies which payload a Value carries.
type ValueKind string

const (
	KindNone   ValueKind = "none"
	KindInt    ValueKind = "int"
	KindLong   ValueKind = "long"
	KindLink   ValueKind = "link"
	KindString ValueKind = "string"
)

// TimestampLayout is used by Display for utc-millisec values.
const TimestampLayout = "2006-01-02 15:04:05"

// Value is the untyped "value" of a property, parameter or argument. Exactly
// one payload is populated. The zero Value is KindNone, so absent and null
// fields look the same.
type Value struct {
	kind      ValueKind
	i32       int32
	i64       int64
	link      *Link
	str       string
	recovered bool
}

// ValueCandidates returns the resolution order for RO values. Link must be
// tried before string, and numbers before either.
func ValueCandidates() []decode.Candidate {
	return []decode.Candidate{
		decode.Null(),
		decode.Int32(),
		decode.Int64(),
		decode.Typed[Link](string(KindLink), isLinkShape),
		decode.String(),
	}
}

// NewValueResolver builds a resolver over ValueCandidates.
func NewValueResolver(options ...decode.Option) *decode.Resolver {
	return decode.NewResolver(ValueCandidates(), options...)
}

var defaultValueResolver = NewValueResolver()

// DecodeValue resolves raw JSON with the supplied resolver, or the package
// default when resolver is nil.
func DecodeValue(raw []byte, resolver *decode.Resolver) (Value, error) {
	if resolver == nil {
		resolver = defaultValueResolver
	}
	return ResolveValue(decode.NewCursor(raw), resolver)
}

// ResolveValue resolves the payload under cur into a Value.
func ResolveValue(cur decode.Cursor, resolver *decode.Resolver) (Value, error) {
	if resolver == nil {
		resolver = defaultValueResolver
	}
	res, err := resolver.Resolve(cur)
	if err != nil {
		return Value{}, err
	}
	return valueFromResolution(res)
}

func valueFromResolution(res decode.Resolution) (Value, error) {
	switch payload := res.Payload.(type) {
	case nil:
		return NullValue(), nil
	case int32:
		return IntValue(payload), nil
	case int64:
		return LongValue(payload), nil
	case Link:
		return LinkValue(payload), nil
	case string:
		v := StringValue(payload)
		v.recovered = res.Recovered
		return v, nil
	default:
		return Value{}, fmt.Errorf("ro: candidate %q produced unsupported payload %T", res.Candidate, res.Payload)
	}
}

// NullValue returns the none payload.
func NullValue() Value { return Value{kind: KindNone} }

// IntValue wraps a 32-bit integer.
func IntValue(v int32) Value { return Value{kind: KindInt, i32: v} }

// LongValue wraps a 64-bit integer (a UTC millisecond timestamp in RO).
func LongValue(v int64) Value { return Value{kind: KindLong, i64: v} }

// LinkValue wraps a reference to another resource.
func LinkValue(link Link) Value {
	l := link
	return Value{kind: KindLink, link: &l}
}

// StringValue wraps a string.
func StringValue(v string) Value { return Value{kind: KindString, str: v} }

// TimestampValue wraps t as utc-millisec.
func TimestampValue(t time.Time) Value { return LongValue(t.UTC().UnixMilli()) }

// Kind reports which payload is set.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return KindNone
	}
	return v.kind
}

// IsNone reports whether the value is absent or null.
func (v Value) IsNone() bool { return v.Kind() == KindNone }

// Int returns the 32-bit payload.
func (v Value) Int() (int32, bool) { return v.i32, v.kind == KindInt }

// Long returns the 64-bit payload.
func (v Value) Long() (int64, bool) { return v.i64, v.kind == KindLong }

// Timestamp interprets a 64-bit payload as UTC milliseconds.
func (v Value) Timestamp() (time.Time, bool) {
	if v.kind != KindLong {
		return time.Time{}, false
	}
	return time.UnixMilli(v.i64).UTC(), true
}

// Link returns the link payload.
func (v Value) Link() (Link, bool) {
	if v.kind != KindLink || v.link == nil {
		return Link{}, false
	}
	return *v.link, true
}

// Text returns the string payload.
func (v Value) Text() (string, bool) { return v.str, v.kind == KindString }

// Recovered reports whether the string payload came from raw text recovery
// rather than a structured decode.
func (v Value) Recovered() bool { return v.recovered }

// Display formats the payload for people: numbers in decimal, timestamps as
// TimestampLayout in UTC, links by title (href when untitled), none as "".
func (v Value) Display() string {
	switch v.Kind() {
	case KindInt:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindLong:
		ts, _ := v.Timestamp()
		return ts.Format(TimestampLayout)
	case KindLink:
		if v.link.Title != "" {
			return v.link.Title
		}
		return v.link.Href
	case KindString:
		return v.str
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.Kind(), v.Display())
}

// UnmarshalJSON resolves the payload with the package resolver. Unrecognised
// payloads fail with decode.ErrUnrecognizedScalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeValue(data, nil)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalJSON writes the payload back in its RO wire form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindInt:
		return json.Marshal(v.i32)
	case KindLong:
		return json.Marshal(v.i64)
	case KindLink:
		return json.Marshal(v.link)
	case KindString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}
