// Package web serves the application shell: guarded views, static assets and
// the update notification stream.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"meetingsManagement/internal/auth"
	"meetingsManagement/internal/backend"
	"meetingsManagement/internal/dates"
	"meetingsManagement/internal/logging"
	"meetingsManagement/internal/router"
	"meetingsManagement/internal/updates"
	"meetingsManagement/models"
)

const dashboardPageSize = 20

// Server is the application shell.
type Server struct {
	router      *router.Router
	backend     backend.Backend
	notifier    *updates.Notifier
	formatter   *dates.Formatter
	tokenCookie string
	staticDir   string
	logger      *zap.Logger
	views       map[string]*template.Template
}

// Options configures a Server.
type Options struct {
	Router      *router.Router
	Backend     backend.Backend
	Notifier    *updates.Notifier
	Formatter   *dates.Formatter
	TokenCookie string
	StaticDir   string
	Logger      *zap.Logger
}

// New builds the shell and parses its views.
func New(opts Options) (*Server, error) {
	if opts.Router == nil || opts.Backend == nil {
		return nil, errors.New("web: router and backend are required")
	}
	views, err := parseViews()
	if err != nil {
		return nil, err
	}
	for _, r := range opts.Router.Table().Routes() {
		if _, ok := views[r.View]; !ok {
			return nil, fmt.Errorf("web: route %s uses unknown view %q", r.Name, r.View)
		}
	}
	if opts.Notifier == nil {
		opts.Notifier = updates.NewNotifier(opts.Logger)
	}
	if opts.Formatter == nil {
		if opts.Formatter, err = dates.NewFormatter("fr-FR", "UTC"); err != nil {
			return nil, err
		}
	}
	return &Server{
		router:      opts.Router,
		backend:     opts.Backend,
		notifier:    opts.Notifier,
		formatter:   opts.Formatter,
		tokenCookie: opts.TokenCookie,
		staticDir:   opts.StaticDir,
		logger:      logging.OrNop(opts.Logger),
		views:       views,
	}, nil
}

// Handler returns the shell's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.staticDir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	}
	mux.HandleFunc("/events/updates", s.handleUpdates)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/", s.withAccessToken(s.router.Middleware(http.HandlerFunc(s.handleView))))
	return mux
}

// HTTPServer returns an http.Server serving the shell on addr. Shutting it
// down closes the notifier so open update streams end and Shutdown can
// drain them.
func (s *Server) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.notifier.Close)
	return srv
}

// withAccessToken copies the caller's access token into the request context.
func (s *Server) withAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := auth.TokenFromRequest(r, s.tokenCookie); tok != "" {
			r = r.WithContext(auth.WithAccessToken(r.Context(), tok))
		}
		next.ServeHTTP(w, r)
	})
}

type pageData struct {
	Title    string
	Route    string
	Meeting  *models.Meeting
	When     dates.Formatted
	Vehicles []models.EventVehicle
	Meetings []meetingRow
	NextPage string
}

type meetingRow struct {
	Meeting models.Meeting
	When    dates.Formatted
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	loc, ok := router.LocationFromContext(r.Context())
	if !ok {
		s.render(w, http.StatusNotFound, notFoundView, pageData{})
		return
	}
	data := pageData{Route: loc.Name()}
	var err error
	switch loc.Route.View {
	case "meeting":
		err = s.loadMeeting(r.Context(), loc.Params["id"], &data)
	case "admin_dashboard":
		err = s.loadDashboard(r.Context(), loc.Query.Get("page"), &data)
	}
	if errors.Is(err, errNotFound) {
		s.render(w, http.StatusNotFound, notFoundView, pageData{})
		return
	}
	if errors.Is(err, backend.ErrInvalidPageToken) {
		s.logger.Debug("rejected page token", zap.String("route", loc.Name()), zap.Error(err))
		http.Error(w, "invalid page token", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("load view data", zap.String("route", loc.Name()), zap.Error(err))
		http.Error(w, "unable to load page", http.StatusBadGateway)
		return
	}
	s.render(w, http.StatusOK, loc.Route.View, data)
}

var errNotFound = errors.New("not found")

func (s *Server) loadMeeting(ctx context.Context, id string, data *pageData) error {
	m, err := s.backend.GetMeeting(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return errNotFound
	}
	vehicles, err := s.backend.ListEventVehicles(ctx, m.ID)
	if err != nil {
		return err
	}
	data.Meeting = m
	data.Vehicles = vehicles
	data.When = s.when(m.StartsAt)
	return nil
}

func (s *Server) loadDashboard(ctx context.Context, page string, data *pageData) error {
	list, next, err := s.backend.ListMeetings(ctx, dashboardPageSize, page)
	if err != nil {
		return err
	}
	for _, m := range list {
		data.Meetings = append(data.Meetings, meetingRow{Meeting: m, When: s.when(m.StartsAt)})
	}
	data.NextPage = next
	return nil
}

func (s *Server) when(startsAt string) dates.Formatted {
	f, err := s.formatter.FormatString(startsAt)
	if err != nil {
		s.logger.Warn("unformattable meeting start", zap.String("starts_at", startsAt), zap.Error(err))
		return dates.Formatted{}
	}
	return f
}

func (s *Server) render(w http.ResponseWriter, code int, view string, data pageData) {
	t, ok := s.views[view]
	if !ok {
		http.Error(w, "unknown view", http.StatusInternalServerError)
		return
	}
	if data.Title == "" {
		data.Title = viewTitles[view]
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("render view", zap.String("view", view), zap.Error(err))
	}
}

// handleUpdates streams update notifications as Server-Sent Events.
func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	events, cancel := s.notifier.Subscribe(8)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				s.logger.Warn("encode update event", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
