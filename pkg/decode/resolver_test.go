package decode_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-kroviz/pkg/decode"
)

type testLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

func isTestLink(cur decode.Cursor) bool {
	if cur.Peek() != '{' {
		return false
	}
	var probe map[string]any
	if err := cur.DecodeInto(&probe); err != nil {
		return false
	}
	href, ok := probe["href"].(string)
	return ok && href != ""
}

func candidates(withLink bool) []decode.Candidate {
	list := []decode.Candidate{decode.Null(), decode.Int32(), decode.Int64()}
	if withLink {
		list = append(list, decode.Typed[testLink]("link", isTestLink))
	}
	return append(list, decode.String())
}

func TestResolver_ResolvesInPriorityOrder(t *testing.T) {
	resolver := decode.NewResolver(candidates(true), decode.WithLogger(zap.NewNop()))

	cases := []struct {
		name      string
		raw       string
		candidate string
		payload   any
		recovered bool
	}{
		{name: "null", raw: `null`, candidate: decode.NameNull, payload: nil},
		{name: "int32", raw: `42`, candidate: decode.NameInt32, payload: int32(42)},
		{name: "int32 lower bound", raw: `-2147483648`, candidate: decode.NameInt32, payload: int32(-2147483648)},
		{name: "int64 just above int32", raw: `2147483648`, candidate: decode.NameInt64, payload: int64(2147483648)},
		{name: "utc millis", raw: `1700000000000`, candidate: decode.NameInt64, payload: int64(1700000000000)},
		{name: "link", raw: `{"href":"http://localhost/restful/objects/x/1","rel":"self"}`, candidate: "link", payload: testLink{Href: "http://localhost/restful/objects/x/1", Rel: "self"}},
		{name: "string", raw: `"hello"`, candidate: decode.NameString, payload: "hello"},
		{name: "numeric looking string", raw: `"42"`, candidate: decode.NameString, payload: "42"},
		{name: "empty string", raw: `""`, candidate: decode.NameString, payload: ""},
		{name: "decimal literal", raw: `12.5`, candidate: decode.NameString, payload: "12.5", recovered: true},
		{name: "boolean literal", raw: `true`, candidate: decode.NameString, payload: "true", recovered: true},
		{name: "int64 overflow", raw: `9223372036854775808`, candidate: decode.NameString, payload: "9223372036854775808", recovered: true},
		{name: "unterminated string", raw: `"abc`, candidate: decode.NameString, payload: "abc", recovered: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.Resolve(decode.NewCursor([]byte(tc.raw)))
			require.NoError(t, err)
			assert.Equal(t, tc.candidate, got.Candidate)
			assert.Equal(t, tc.payload, got.Payload)
			assert.Equal(t, tc.recovered, got.Recovered)
		})
	}
}

func TestResolver_LinkWinsOverStringRecovery(t *testing.T) {
	raw := []byte(`{"href":"http://localhost/restful/services","rel":"up","value":"services"}`)

	withLink := decode.NewResolver(candidates(true), decode.WithLogger(zap.NewNop()))
	got, err := withLink.Resolve(decode.NewCursor(raw))
	require.NoError(t, err)
	assert.Equal(t, "link", got.Candidate)
	assert.False(t, got.Recovered)

	// Without a link candidate the same payload degrades to the marker token.
	withoutLink := decode.NewResolver(candidates(false), decode.WithLogger(zap.NewNop()))
	got, err = withoutLink.Resolve(decode.NewCursor(raw))
	require.NoError(t, err)
	assert.Equal(t, decode.NameString, got.Candidate)
	assert.Equal(t, "services", got.Payload)
	assert.True(t, got.Recovered)
}

func TestResolver_FallbackExtractsMarkerToken(t *testing.T) {
	resolver := decode.NewResolver(candidates(true), decode.WithLogger(zap.NewNop()))

	raw := `{\"id\":\"name\",\n\"value\":\"Ada Lovelace\", \"format\":\"string\"}`
	got, err := resolver.Resolve(decode.NewCursor([]byte(raw)))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Payload)
	assert.True(t, got.Recovered)
}

func TestResolver_UnrecognizedScalar(t *testing.T) {
	resolver := decode.NewResolver(candidates(true), decode.WithLogger(zap.NewNop()))

	cases := map[string]string{
		"array":              `[1,2]`,
		"object sans marker": `{"title":"x"}`,
		"nested marker":      `{"value":{"title":"x"}}`,
		"null marker":        `{"value":null,"extra":[1}`,
		"blank":              "   ",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := resolver.Resolve(decode.NewCursor([]byte(raw)))
			require.Error(t, err)
			assert.ErrorIs(t, err, decode.ErrUnrecognizedScalar)

			var unrecognized *decode.UnrecognizedScalarError
			require.True(t, errors.As(err, &unrecognized))
			assert.Len(t, unrecognized.Attempts, 5)
			for _, attempt := range unrecognized.Attempts {
				assert.ErrorIs(t, attempt, decode.ErrShapeMismatch)
			}
		})
	}
}

func TestResolver_WithoutFallbackFailsLoud(t *testing.T) {
	resolver := decode.NewResolver(candidates(true), decode.WithoutFallback(), decode.WithLogger(zap.NewNop()))

	_, err := resolver.Resolve(decode.NewCursor([]byte(`12.5`)))
	require.ErrorIs(t, err, decode.ErrUnrecognizedScalar)
	assert.Contains(t, err.Error(), "fallback disabled")
	assert.Contains(t, err.Error(), "12.5")
}

type opaqueCursor struct {
	inner *decode.BytesCursor
}

func (c opaqueCursor) Peek() byte             { return c.inner.Peek() }
func (c opaqueCursor) DecodeInto(v any) error { return c.inner.DecodeInto(v) }

func TestResolver_FallbackNeedsRawTextCapability(t *testing.T) {
	resolver := decode.NewResolver(candidates(true), decode.WithLogger(zap.NewNop()))

	_, err := resolver.Resolve(opaqueCursor{inner: decode.NewCursor([]byte(`true`))})
	require.ErrorIs(t, err, decode.ErrUnrecognizedScalar)
	assert.Contains(t, err.Error(), "does not expose raw text")

	got, err := resolver.Resolve(opaqueCursor{inner: decode.NewCursor([]byte(`7`))})
	require.NoError(t, err)
	assert.Equal(t, int32(7), got.Payload)
}

type recordingCursor struct {
	*decode.BytesCursor
	seen []string
}

func (c *recordingCursor) DecodeInto(v any) error {
	c.seen = append(c.seen, c.RawText())
	return c.BytesCursor.DecodeInto(v)
}

func TestResolver_FailedAttemptsDoNotConsumeCursor(t *testing.T) {
	raw := `"2024-01-01"`
	cur := &recordingCursor{BytesCursor: decode.NewCursor([]byte(raw))}

	always := func(decode.Cursor) bool { return true }
	resolver := decode.NewResolver([]decode.Candidate{
		decode.Typed[int32]("int32", always),
		decode.Typed[int64]("int64", always),
		decode.Typed[testLink]("link", always),
		decode.String(),
	}, decode.WithLogger(zap.NewNop()))

	got, err := resolver.Resolve(cur)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got.Payload)
	require.Len(t, cur.seen, 4)
	for _, seen := range cur.seen {
		assert.Equal(t, raw, seen)
	}
}

func TestResolver_LogsRejectedCandidatesAndFallback(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	resolver := decode.NewResolver(candidates(true), decode.WithLogger(zap.New(core)))

	_, err := resolver.Resolve(decode.NewCursor([]byte(`false`)))
	require.NoError(t, err)

	rejected := logs.FilterMessage("value candidate rejected").All()
	require.Len(t, rejected, 5)
	assert.Equal(t, decode.NameNull, rejected[0].ContextMap()["candidate"])
	assert.Equal(t, decode.NameString, rejected[4].ContextMap()["candidate"])
	assert.Equal(t, 1, logs.FilterMessage("recovering value from raw text").Len())
}

func TestResolver_CandidatesAreCopied(t *testing.T) {
	list := candidates(false)
	resolver := decode.NewResolver(list)
	list[0] = decode.String()

	assert.Equal(t, []string{"null", "int32", "int64", "string"}, resolver.Candidates())
}
