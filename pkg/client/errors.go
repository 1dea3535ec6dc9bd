package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoLayout is returned when an object carries no object-layout link.
	ErrNoLayout = errors.New("client: object has no layout link")
	// ErrNoInvokeLink is returned when an action representation cannot be
	// invoked.
	ErrNoInvokeLink = errors.New("client: action has no invoke link")
	// ErrUnsafeAction is returned for actions whose semantics are not safe;
	// only safe actions are invoked with GET.
	ErrUnsafeAction = errors.New("client: action is not safe to invoke")
)

// HTTPError reports a non-2xx response. Body keeps the payload so callers
// can extract RO invalid reasons.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("client: %s %s: unexpected status %s", e.Method, e.URL, status)
}

// StatusOf returns the status code of an *HTTPError in err's chain, or 0.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
