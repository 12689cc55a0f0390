package router

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"meetingsManagement/internal/logging"
)

// Router resolves paths against a route table and guards navigations.
type Router struct {
	table   *Table
	lookups Lookups
	opts    GuardOptions
	logger  *zap.Logger
}

// New builds a router. The table and lookups are required.
func New(table *Table, lookups Lookups, opts GuardOptions, logger *zap.Logger) *Router {
	if table == nil || lookups == nil {
		panic("router: table and lookups are required")
	}
	return &Router{table: table, lookups: lookups, opts: opts.withDefaults(), logger: logging.OrNop(logger)}
}

// Table returns the route table.
func (r *Router) Table() *Table { return r.table }

// Resolve matches a path against the route table.
func (r *Router) Resolve(path string) (*Location, bool) {
	return r.table.Resolve(path)
}

// Navigate resolves to and runs the guard. from is the location the
// navigation starts at and may be nil. An unknown path still reads the
// session, then proceeds with a nil location so the caller can render its
// not-found view.
func (r *Router) Navigate(ctx context.Context, to string, from *Location) (Decision, *Location, error) {
	loc, ok := r.table.Resolve(to)
	var target *Route
	if ok {
		target = loc.Route
	} else {
		loc = nil
	}
	d, err := Decide(ctx, target, r.lookups, r.opts)
	if err != nil {
		r.logger.Warn("navigation guard failed",
			zap.String("to", to), zap.String("from", from.Name()), zap.Error(err))
		return Decision{}, loc, err
	}
	if d.Outcome == Redirect {
		r.logger.Debug("navigation redirected",
			zap.String("to", to), zap.String("route", loc.Name()),
			zap.String("from", from.Name()), zap.String("redirect", d.RedirectTo))
	}
	return d, loc, nil
}

type locationKey struct{}

// WithLocation stores the resolved location in context.
func WithLocation(ctx context.Context, loc *Location) context.Context {
	return context.WithValue(ctx, locationKey{}, loc)
}

// LocationFromContext retrieves the resolved location from context (if any).
func LocationFromContext(ctx context.Context) (*Location, bool) {
	loc, ok := ctx.Value(locationKey{}).(*Location)
	return loc, ok && loc != nil
}

// Middleware guards GET/HEAD navigations. Proceeding requests reach next with
// the resolved location in context; redirects answer 302 Found. The caller's
// access token must already be in the request context.
func (r *Router) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			next.ServeHTTP(w, req)
			return
		}
		d, loc, err := r.Navigate(req.Context(), req.URL.RequestURI(), r.referrer(req))
		if err != nil {
			if errors.Is(err, context.Canceled) || req.Context().Err() != nil {
				return
			}
			http.Error(w, "navigation check failed", http.StatusBadGateway)
			return
		}
		if d.Outcome == Redirect {
			http.Redirect(w, req, d.RedirectTo, http.StatusFound)
			return
		}
		if loc != nil {
			req = req.WithContext(WithLocation(req.Context(), loc))
		}
		next.ServeHTTP(w, req)
	})
}

// referrer resolves the same-origin Referer as the navigation source.
func (r *Router) referrer(req *http.Request) *Location {
	ref := req.Referer()
	if ref == "" {
		return nil
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != req.Host) {
		return nil
	}
	loc, _ := r.table.Resolve(u.Path)
	return loc
}
