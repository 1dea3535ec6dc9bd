package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-kroviz/pkg/layout"
	"github.com/goliatone/go-kroviz/pkg/ro"
)

const (
	// MenuBarsPath is the Causeway menu bars resource below the base URL.
	MenuBarsPath = "/restful/menuBars"

	// AcceptJSON asks for RO JSON in the Causeway v2 flavour.
	AcceptJSON = `application/json;profile="urn:org.apache.causeway/v2", application/json;q=0.9`
	// AcceptLayout prefers JSON layouts and accepts the BS3 XML grid.
	AcceptLayout = `application/json, application/xml;q=0.9`

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 16 << 20
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient supplies the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithBasicAuth sends credentials on every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout bounds each request. Zero disables the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to one RO backend.
type Client struct {
	base     *url.URL
	http     *http.Client
	username string
	password string
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a client for the backend at baseURL (scheme and host, with an
// optional path prefix).
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("client: base url is required")
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must be http or https", baseURL)
	}

	c := &Client{
		base:    base,
		http:    http.DefaultClient,
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Response is a fetched representation.
type Response struct {
	Link        ro.Link
	StatusCode  int
	ContentType string
	Repr        ro.RepresentationType
	Body        []byte
}

// Fetch performs the request described by link. The method defaults to GET
// and relative hrefs resolve against the base URL. Non-2xx responses fail
// with *HTTPError.
func (c *Client) Fetch(ctx context.Context, link ro.Link) (Response, error) {
	return c.fetch(ctx, link, AcceptJSON)
}

func (c *Client) fetch(ctx context.Context, link ro.Link, accept string) (Response, error) {
	target, err := c.Resolve(link.Href)
	if err != nil {
		return Response{}, err
	}
	method := strings.ToUpper(strings.TrimSpace(link.Method))
	if method == "" {
		method = http.MethodGet
	}

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, nil)
	if err != nil {
		return Response{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("ro request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Error(err),
		)
		return Response{}, fmt.Errorf("client: %s %s: %w", method, target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("client: read %s: %w", target, err)
	}

	contentType := resp.Header.Get("Content-Type")
	c.logger.Debug("ro response",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.String("contentType", contentType),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, &HTTPError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	resolved := link
	resolved.Href = target
	resolved.Method = method
	return Response{
		Link:        resolved,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Repr:        ro.ParseRepresentationType(contentType),
		Body:        body,
	}, nil
}

// Resolve turns an href into an absolute URL on the backend.
func (c *Client) Resolve(href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", errors.New("client: href is required")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("client: parse href %q: %w", href, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	joined := *c.base
	joined.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	joined.RawQuery = ref.RawQuery
	return joined.String(), nil
}

// Menubars loads the application menu bars.
func (c *Client) Menubars(ctx context.Context) (ro.Menubars, error) {
	resp, err := c.Fetch(ctx, ro.Link{Href: MenuBarsPath})
	if err != nil {
		return ro.Menubars{}, err
	}
	return ro.ParseMenubars(resp.Body)
}

// Object loads a domain object.
func (c *Client) Object(ctx context.Context, link ro.Link) (ro.DomainObject, error) {
	resp, err := c.Fetch(ctx, link)
	if err != nil {
		return ro.DomainObject{}, err
	}
	return ro.ParseObject(resp.Body)
}

// Layout follows the object-layout link of obj and parses the grid. The
// payload format follows the response content type.
func (c *Client) Layout(ctx context.Context, obj ro.DomainObject) (layout.Grid, error) {
	link, ok := obj.LayoutLink()
	if !ok {
		return layout.Grid{}, ErrNoLayout
	}
	resp, err := c.fetch(ctx, link, AcceptLayout)
	if err != nil {
		return layout.Grid{}, err
	}
	return layout.ParseFormat(resp.Body, layout.FormatFromName(resp.ContentType))
}

// ActionResult loads the action behind link and invokes it through its
// invoke link. Only actions with safe semantics are invoked.
func (c *Client) ActionResult(ctx context.Context, link ro.Link) (ro.ActionResult, error) {
	resp, err := c.Fetch(ctx, link)
	if err != nil {
		return ro.ActionResult{}, err
	}
	action, err := ro.ParseMember(resp.Body)
	if err != nil {
		return ro.ActionResult{}, err
	}
	return c.Invoke(ctx, action)
}

// Invoke calls a safe action that has already been fetched.
func (c *Client) Invoke(ctx context.Context, action ro.Member) (ro.ActionResult, error) {
	if !SafeSemantics(action.Extensions.ActionSemantics) {
		return ro.ActionResult{}, fmt.Errorf("%w: %s (%s)", ErrUnsafeAction, action.ID, action.Extensions.ActionSemantics)
	}
	invoke, ok := ro.FindLink(action.Links, ro.RelInvoke)
	if !ok {
		return ro.ActionResult{}, fmt.Errorf("%w: %s", ErrNoInvokeLink, action.ID)
	}
	resp, err := c.Fetch(ctx, invoke)
	if err != nil {
		return ro.ActionResult{}, err
	}
	return ro.ParseActionResult(resp.Body)
}

// SafeSemantics reports whether an action can be invoked with GET. Missing
// semantics are treated as unsafe.
func SafeSemantics(semantics string) bool {
	switch strings.ToLower(strings.TrimSpace(semantics)) {
	case "safe", "safeandrequestcacheable":
		return true
	default:
		return false
	}
}
