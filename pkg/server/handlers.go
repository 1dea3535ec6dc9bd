package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-kroviz/pkg/client"
	"github.com/goliatone/go-kroviz/pkg/orchestrator"
	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/ro"
)

// ErrBadHref is returned for missing hrefs and hrefs outside the backend.
var ErrBadHref = errors.New("server: href must point at the backend")

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	bars, err := s.backend.Menubars(r.Context())
	if err != nil {
		s.fail(w, r, err, nil)
		return
	}
	s.respond(w, r, http.StatusOK, orchestrator.Request{
		Content: orchestrator.Content{Menubars: &bars},
		Status:  page.Status{Message: "Connected to " + s.backend.BaseURL()},
	})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	href := strings.TrimSpace(r.URL.Query().Get("href"))
	if !s.onBackend(href) {
		s.fail(w, r, fmt.Errorf("%w: %q", ErrBadHref, href), nil)
		return
	}

	var (
		bars   ro.Menubars
		barsOK bool
		target orchestrator.Loaded
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		fetched, err := s.backend.Menubars(ctx)
		if err != nil {
			return err
		}
		bars, barsOK = fetched, true
		return nil
	})
	g.Go(func() error {
		var err error
		target, err = orchestrator.Load(ctx, s.backend, ro.Link{Href: href, Method: http.MethodGet})
		return err
	})
	if err := g.Wait(); err != nil {
		var menus *ro.Menubars
		if barsOK {
			menus = &bars
		}
		s.fail(w, r, err, menus)
		return
	}

	target.Content.Menubars = &bars
	s.respond(w, r, http.StatusOK, orchestrator.Request{
		Content: target.Content,
		Status:  target.Status,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// onBackend accepts relative hrefs and absolute ones on the backend origin.
func (s *Server) onBackend(href string) bool {
	if href == "" {
		return false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return false
	}
	if !ref.IsAbs() {
		return ref.Host == ""
	}
	base, err := url.Parse(s.backend.BaseURL())
	if err != nil {
		return false
	}
	return strings.EqualFold(ref.Scheme, base.Scheme) && strings.EqualFold(ref.Host, base.Host)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, code int, req orchestrator.Request) {
	req.Renderer = s.renderer
	p, err := s.orch.Compose(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, req.Content.Menubars)
		return
	}
	s.write(w, r, code, p)
}

// fail renders an error page: the menu bar when known and the error in the
// status bar. RO validation failures are mapped onto the page as well.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, cause error, bars *ro.Menubars) {
	code := statusFor(cause)
	level := page.LevelError
	if code < http.StatusInternalServerError {
		level = page.LevelWarn
	}
	s.logger.Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
		zap.Error(cause),
	)

	p, err := s.orch.Compose(r.Context(), orchestrator.Request{
		Content:  orchestrator.Content{Menubars: bars},
		Status:   page.Status{Level: level, Message: cause.Error()},
		Renderer: s.renderer,
	})
	if err != nil {
		http.Error(w, cause.Error(), code)
		return
	}

	var httpErr *client.HTTPError
	if errors.As(cause, &httpErr) && httpErr.StatusCode == http.StatusUnprocessableEntity {
		if reasons, err := render.InvalidReasons(httpErr.Body); err == nil {
			mapped := render.MapInvalidReasons(p.Root, reasons)
			p.Options.Errors = mapped.Fields
			p.Options.FormErrors = render.MergeFormErrors(p.Options.FormErrors, mapped.Form...)
		}
	}
	s.write(w, r, code, p)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, code int, p orchestrator.Page) {
	out, err := s.orch.Render(r.Context(), p, s.renderer)
	if err != nil {
		s.logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(code)
	_, _ = w.Write(out.Body)
}

// statusFor maps pipeline errors onto HTTP status codes. Backend statuses
// pass through. Everything else, including malformed layouts and
// unrecognised scalars, is reported as a bad gateway.
func statusFor(err error) int {
	if code := client.StatusOf(err); code != 0 {
		return code
	}
	switch {
	case errors.Is(err, ErrBadHref):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrUnsafeAction):
		return http.StatusMethodNotAllowed
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
