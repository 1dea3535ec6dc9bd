package ro_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-kroviz/pkg/decode"
	"github.com/goliatone/go-kroviz/pkg/ro"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		kind    ro.ValueKind
		display string
	}{
		{name: "null", raw: `null`, kind: ro.KindNone, display: ""},
		{name: "int", raw: `-17`, kind: ro.KindInt, display: "-17"},
		{name: "int32 max", raw: `2147483647`, kind: ro.KindInt, display: "2147483647"},
		{name: "timestamp", raw: `1514764800000`, kind: ro.KindLong, display: "2018-01-01 00:00:00"},
		{name: "string", raw: `"Fred"`, kind: ro.KindString, display: "Fred"},
		{name: "numeric string", raw: `"1514764800000"`, kind: ro.KindString, display: "1514764800000"},
		{name: "link", raw: `{"href":"http://x/objects/a/1","rel":"urn:org.restfulobjects:rels/value","method":"GET","type":"application/json","title":"Ada"}`, kind: ro.KindLink, display: "Ada"},
		{name: "untitled link", raw: `{"href":"http://x/objects/a/1"}`, kind: ro.KindLink, display: "http://x/objects/a/1"},
		{name: "decimal", raw: `12.5`, kind: ro.KindString, display: "12.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v ro.Value
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &v))
			assert.Equal(t, tc.kind, v.Kind())
			assert.Equal(t, tc.display, v.Display())
		})
	}
}

func TestValue_LinkFieldsVerbatim(t *testing.T) {
	raw := `{"href":"http://x/objects/a/1","rel":"urn:org.restfulobjects:rels/value","method":"PUT","type":"application/json;profile=\"urn:org.restfulobjects:repr-types/object\""}`

	v, err := ro.DecodeValue([]byte(raw), nil)
	require.NoError(t, err)

	link, ok := v.Link()
	require.True(t, ok)
	assert.Equal(t, ro.Link{
		Href:   "http://x/objects/a/1",
		Rel:    "urn:org.restfulobjects:rels/value",
		Method: "PUT",
		Type:   `application/json;profile="urn:org.restfulobjects:repr-types/object"`,
	}, link)
}

func TestValue_ObjectWithoutHrefIsNotALink(t *testing.T) {
	_, err := ro.DecodeValue([]byte(`{"rel":"self","method":"GET"}`), ro.NewValueResolver(decode.WithLogger(zap.NewNop())))
	require.ErrorIs(t, err, decode.ErrUnrecognizedScalar)
}

func TestValue_UnrecognizedPropagatesThroughUnmarshal(t *testing.T) {
	var member ro.Member
	err := json.Unmarshal([]byte(`{"id":"tags","memberType":"property","value":["a","b"]}`), &member)
	require.Error(t, err)
	assert.ErrorIs(t, err, decode.ErrUnrecognizedScalar)
}

func TestValue_AbsentEqualsNull(t *testing.T) {
	var absent, null ro.Member
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","value":null}`), &null))

	assert.True(t, absent.Value.IsNone())
	assert.True(t, null.Value.IsNone())
}

func TestValue_Accessors(t *testing.T) {
	ts := time.Date(2024, 2, 29, 12, 30, 0, 0, time.UTC)
	v := ro.TimestampValue(ts)

	got, ok := v.Timestamp()
	require.True(t, ok)
	assert.True(t, ts.Equal(got))

	_, ok = v.Int()
	assert.False(t, ok)
	_, ok = ro.IntValue(5).Timestamp()
	assert.False(t, ok)

	text, ok := ro.StringValue("x").Text()
	assert.True(t, ok)
	assert.Equal(t, "x", text)
	assert.Equal(t, "int(5)", ro.IntValue(5).String())
}

func TestValue_RecoveredFlag(t *testing.T) {
	v, err := ro.DecodeValue([]byte(`true`), ro.NewValueResolver(decode.WithLogger(zap.NewNop())))
	require.NoError(t, err)
	assert.Equal(t, ro.KindString, v.Kind())
	assert.True(t, v.Recovered())

	v, err = ro.DecodeValue([]byte(`"true"`), nil)
	require.NoError(t, err)
	assert.False(t, v.Recovered())
}

func TestValue_MarshalJSON(t *testing.T) {
	cases := map[string]ro.Value{
		`null`:                     ro.NullValue(),
		`7`:                        ro.IntValue(7),
		`1514764800000`:            ro.LongValue(1514764800000),
		`"Fred"`:                   ro.StringValue("Fred"),
		`{"rel":"self","href":"h"}`: ro.LinkValue(ro.Link{Rel: "self", Href: "h"}),
	}
	for want, v := range cases {
		got, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, want, string(got))
	}
}
