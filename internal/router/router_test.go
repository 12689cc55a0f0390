package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, f *fakeLookups, opts GuardOptions) *Router {
	t.Helper()
	table, err := DefaultTable()
	require.NoError(t, err)
	return New(table, f, opts, nil)
}

func TestNavigate(t *testing.T) {
	f := &fakeLookups{session: sessionFor("u1"), roles: map[string]string{"u1": "member"}}
	r := newTestRouter(t, f, GuardOptions{})
	from, _ := r.Resolve("/")

	d, loc, err := r.Navigate(context.Background(), "/admin/dashboard", from)
	require.NoError(t, err)
	require.Equal(t, "admin-dashboard", loc.Name())
	require.Equal(t, Decision{Outcome: Redirect, RedirectTo: "/"}, d)

	d, loc, err = r.Navigate(context.Background(), "/does/not/exist", nil)
	require.NoError(t, err)
	require.Nil(t, loc)
	require.Equal(t, Proceed, d.Outcome)
	require.Equal(t, 2, f.sessionCalls)
}

func TestMiddleware(t *testing.T) {
	var seen *Location
	next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		seen, _ = LocationFromContext(req.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous meeting redirects to login", func(t *testing.T) {
		r := newTestRouter(t, &fakeLookups{}, GuardOptions{})
		rec := httptest.NewRecorder()
		r.Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meeting/42", nil))
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("signed in meeting proceeds with location", func(t *testing.T) {
		r := newTestRouter(t, &fakeLookups{session: sessionFor("u1")}, GuardOptions{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/meeting/42", nil)
		req.Header.Set("Referer", "http://example.com/")
		r.Middleware(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		require.Equal(t, "42", seen.Params["id"])
	})

	t.Run("lookup failure with propagate answers bad gateway", func(t *testing.T) {
		r := newTestRouter(t, &fakeLookups{sessionErr: errors.New("down")}, GuardOptions{})
		rec := httptest.NewRecorder()
		r.Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("non-navigation methods bypass the guard", func(t *testing.T) {
		f := &fakeLookups{}
		r := newTestRouter(t, f, GuardOptions{})
		rec := httptest.NewRecorder()
		r.Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meeting/42", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 0, f.sessionCalls)
	})
}

func TestNew_PanicsWithoutDependencies(t *testing.T) {
	require.Panics(t, func() { New(nil, &fakeLookups{}, GuardOptions{}, nil) })
}
