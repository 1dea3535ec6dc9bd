package decode

import (
	"errors"
	"slices"

	"go.uber.org/zap"
)

// DefaultMarker is the field name the fallback looks for when the raw payload
// is a structured document instead of a bare literal.
const DefaultMarker = "value"

// Resolution is the outcome of a successful Resolve call.
type Resolution struct {
	// Candidate names the candidate that produced Payload. Recovered strings
	// report NameString.
	Candidate string
	Payload   any
	// Recovered is true when Payload came from the raw text fallback.
	Recovered bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostics. When unset the resolver
// logs through zap.L() so process-wide replacements apply.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithoutFallback disables raw text recovery: when every candidate fails the
// resolver returns ErrUnrecognizedScalar straight away.
func WithoutFallback() Option {
	return func(r *Resolver) {
		r.fallback = false
	}
}

// WithMarker overrides the field name the fallback searches for.
func WithMarker(marker string) Option {
	return func(r *Resolver) {
		if marker != "" {
			r.marker = marker
		}
	}
}

// Resolver tries candidates in declaration order; the first match wins.
type Resolver struct {
	candidates []Candidate
	logger     *zap.Logger
	fallback   bool
	marker     string
}

// NewResolver captures the ordered candidate list. The slice is copied so later
// mutations by the caller do not change resolution order.
func NewResolver(candidates []Candidate, options ...Option) *Resolver {
	r := &Resolver{
		candidates: slices.Clone(candidates),
		fallback:   true,
		marker:     DefaultMarker,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Candidates returns the candidate names in resolution order.
func (r *Resolver) Candidates() []string {
	names := make([]string, 0, len(r.candidates))
	for _, c := range r.candidates {
		names = append(names, c.Name)
	}
	return names
}

// Resolve returns the first candidate that accepts the payload. Shape
// mismatches are logged at debug level and never escape; the only error is
// *UnrecognizedScalarError.
func (r *Resolver) Resolve(cur Cursor) (Resolution, error) {
	if cur == nil {
		return Resolution{}, &UnrecognizedScalarError{Reason: "cursor is nil"}
	}
	log := r.log()

	var attempts []*ShapeMismatchError
	for _, candidate := range r.candidates {
		payload, err := attempt(candidate, cur)
		if err == nil {
			return Resolution{Candidate: candidate.Name, Payload: payload}, nil
		}
		var mismatch *ShapeMismatchError
		if !errors.As(err, &mismatch) {
			mismatch = &ShapeMismatchError{Candidate: candidate.Name, Err: err}
		}
		attempts = append(attempts, mismatch)
		log.Debug("value candidate rejected",
			zap.String("candidate", candidate.Name),
			zap.Error(mismatch.Err),
		)
	}

	unrecognized := &UnrecognizedScalarError{Attempts: attempts}
	raw, ok := cur.(RawTextCursor)
	if ok {
		unrecognized.Raw = raw.RawText()
	}
	if !r.fallback {
		unrecognized.Reason = "fallback disabled"
		return Resolution{}, unrecognized
	}
	if !ok {
		unrecognized.Reason = "cursor does not expose raw text"
		log.Warn("value fallback unavailable", zap.Int("attempts", len(attempts)))
		return Resolution{}, unrecognized
	}

	log.Warn("recovering value from raw text", zap.String("raw", truncate(unrecognized.Raw, 64)))
	text, found := recoverString(unrecognized.Raw, r.marker)
	if !found {
		unrecognized.Reason = "no literal or " + r.marker + " marker in raw text"
		return Resolution{}, unrecognized
	}
	log.Debug("recovered value from raw text", zap.String("value", text))
	return Resolution{Candidate: NameString, Payload: text, Recovered: true}, nil
}

func attempt(candidate Candidate, cur Cursor) (any, error) {
	if candidate.Match != nil && !candidate.Match(cur) {
		return nil, &ShapeMismatchError{Candidate: candidate.Name}
	}
	if candidate.Decode == nil {
		return nil, &ShapeMismatchError{Candidate: candidate.Name, Err: errors.New("decode: candidate has no decode function")}
	}
	payload, err := candidate.Decode(cur)
	if err != nil {
		return nil, &ShapeMismatchError{Candidate: candidate.Name, Err: err}
	}
	return payload, nil
}

func (r *Resolver) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return zap.L()
}
