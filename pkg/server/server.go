// Package server serves the questionnaire as plain HTML forms. Every browser
// session owns its own controller; sessions live in memory only.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/notify"
	"github.com/goliatone/go-pmsform/pkg/render"
	htmlrenderer "github.com/goliatone/go-pmsform/pkg/renderers/html"
)

const (
	// DefaultCookieName holds the session id.
	DefaultCookieName = "pmsform_session"
	// CSRFField is the hidden input carrying the per-session token.
	CSRFField = "_csrf"
)

// PageRenderer renders a full HTML document for a section view.
type PageRenderer interface {
	RenderPage(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error)
}

// Option configures a Server.
type Option func(*Server)

// WithPageRenderer replaces the default HTML renderer.
func WithPageRenderer(renderer PageRenderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.pages = renderer
		}
	}
}

// WithControllerOptions are applied to every session controller.
func WithControllerOptions(options ...controller.Option) Option {
	return func(s *Server) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}

// WithNotifier receives every notification of every session, in addition to
// the per-session flash messages.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Server) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCookieName overrides DefaultCookieName.
func WithCookieName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// Server is an http.Handler for GET and POST on its mount path.
type Server struct {
	catalog           catalog.Catalog
	pages             PageRenderer
	controllerOptions []controller.Option
	notifier          notify.Notifier
	logger            *slog.Logger
	cookieName        string

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id    string
	csrf  string
	form  *controller.Controller
	mu    sync.Mutex
	flash []notify.Notification
}

func (s *session) Notify(_ context.Context, n notify.Notification) {
	s.mu.Lock()
	s.flash = append(s.flash, n)
	s.mu.Unlock()
}

// drain returns pending notifications split into errors and notices.
func (s *session) drain() (errs, notices []string) {
	s.mu.Lock()
	pending := s.flash
	s.flash = nil
	s.mu.Unlock()

	for _, n := range pending {
		msg := n.Title
		if n.Description != "" {
			msg += ": " + n.Description
		}
		if n.Severity == notify.SeverityError {
			errs = append(errs, msg)
		} else {
			notices = append(notices, msg)
		}
	}
	return errs, notices
}

// New validates cat and builds a server. The default page renderer is the
// built-in HTML renderer.
func New(cat catalog.Catalog, options ...Option) (*Server, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("server: invalid catalog: %w", err)
	}
	s := &Server{
		catalog:    cat,
		notifier:   notify.Nop{},
		logger:     slog.Default(),
		cookieName: DefaultCookieName,
		sessions:   make(map[string]*session),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.pages == nil {
		renderer, err := htmlrenderer.New()
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.pages = renderer
	}
	return s, nil
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ServeHTTP renders the current section on GET and applies a posted section
// on POST, answering with a redirect back to the form.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.handleView(w, r)
	case http.MethodPost:
		s.handlePost(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to start session", slog.String("error", err.Error()))
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}

	// A finished response is acknowledged once and replaced by a fresh form.
	if sess.form.State().Phase == controller.PhaseSubmitted {
		if err := sess.form.Reset(); err != nil {
			s.logger.WarnContext(r.Context(), "Failed to reset form", slog.String("error", err.Error()))
		}
	}

	formErrors, notices := sess.drain()
	opts := render.RenderOptions{
		Action:     r.URL.Path,
		Hidden:     render.MergeHiddenFields(nil, render.CSRFToken(CSRFField, sess.csrf)),
		FormErrors: formErrors,
		Notices:    notices,
	}
	body, err := s.pages.RenderPage(r.Context(), render.ViewOf(sess.form), opts)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to render section", slog.String("error", err.Error()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess, ok := s.lookup(r)
	if !ok {
		// Expired or unknown session: start over with a fresh form.
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}
	if r.PostForm.Get(CSRFField) != sess.csrf {
		http.Error(w, "invalid form token", http.StatusForbidden)
		return
	}

	ctx := r.Context()
	log := s.logger.With(slog.String("session", sess.id))
	state := sess.form.State()

	// A post for another section is stale (back button, second tab); its
	// values are dropped and the respondent sees the current section again.
	if posted := htmlrenderer.PostedSection(r.PostForm); posted != state.Index {
		log.DebugContext(ctx, "Ignoring stale post", slog.Int("posted", posted), slog.Int("current", state.Index))
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	changes, err := htmlrenderer.Decode(sess.form.Section(), state.Answers, r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	action, err := htmlrenderer.DecodeAction(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, change := range changes {
		if err := sess.form.FieldChange(change.QuestionID, change.Value); err != nil {
			s.reject(ctx, log, err)
			http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
			return
		}
	}

	if err := s.navigate(ctx, sess.form, action); err != nil {
		s.reject(ctx, log, err)
	}
	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

func (s *Server) navigate(ctx context.Context, form *controller.Controller, action htmlrenderer.Action) error {
	switch action.Kind {
	case "next":
		return form.Advance()
	case "previous":
		return form.Retreat()
	case "jump":
		return form.Jump(action.Index)
	case "submit":
		return form.Submit(ctx)
	default:
		return nil
	}
}

// reject logs refused events. Validation and gateway failures are already
// visible to the respondent through the error map and notifications.
func (s *Server) reject(ctx context.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, controller.ErrIncomplete),
		errors.Is(err, controller.ErrSubmitInFlight),
		errors.Is(err, controller.ErrFirstSection),
		errors.Is(err, controller.ErrIndexOutOfRange):
		log.DebugContext(ctx, "Form event refused", slog.String("reason", err.Error()))
	default:
		log.WarnContext(ctx, "Form action failed", slog.String("error", err.Error()))
	}
}

func (s *Server) lookup(r *http.Request) (*session, bool) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[cookie.Value]
	return sess, ok
}

// session returns the caller's session, creating one and setting the cookie
// when the request carries none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, error) {
	if sess, ok := s.lookup(r); ok {
		return sess, nil
	}

	sess := &session{
		id:   uuid.NewString(),
		csrf: uuid.NewString(),
	}
	options := append([]controller.Option{}, s.controllerOptions...)
	options = append(options,
		controller.WithNotifier(notify.Multi{s.notifier, sess}),
		controller.WithLogger(s.logger.With(slog.String("session", sess.id))),
	)
	form, err := controller.New(s.catalog, options...)
	if err != nil {
		return nil, err
	}
	sess.form = form

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}
