package router

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Route names the guard treats specially.
const (
	RouteHome   = "home"
	RouteLogin  = "login"
	RouteSignup = "signup"
)

//go:embed routes.yaml
var defaultRoutes []byte

// Meta carries the per-route guard flags.
type Meta struct {
	RequiresAuth  bool `yaml:"requiresAuth"`
	RequiresAdmin bool `yaml:"requiresAdmin"`
}

// Route describes one navigable view.
type Route struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	View string `yaml:"view"`
	Meta Meta   `yaml:"meta"`

	segments []string
}

// Location is a route resolved against a concrete path.
type Location struct {
	Route  *Route
	Path   string
	Params map[string]string
	Query  url.Values
}

// Name returns the resolved route name, or "" for an unresolved location.
func (l *Location) Name() string {
	if l == nil || l.Route == nil {
		return ""
	}
	return l.Route.Name
}

// Table is an ordered set of routes; the first match wins.
type Table struct {
	routes []*Route
	byName map[string]*Route
}

// DefaultTable returns the built-in route table.
func DefaultTable() (*Table, error) {
	return ParseTable(bytes.NewReader(defaultRoutes))
}

// LoadTableFile reads a route table from a YAML file. An empty path yields
// the built-in table.
func LoadTableFile(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTable()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open routes: %w", err)
	}
	defer f.Close()
	return ParseTable(f)
}

// ParseTable decodes and validates a YAML route table.
func ParseTable(r io.Reader) (*Table, error) {
	var doc struct {
		Routes []*Route `yaml:"routes"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return NewTable(doc.Routes...)
}

// NewTable validates routes and builds a table.
func NewTable(routes ...*Route) (*Table, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("route table is empty")
	}
	t := &Table{byName: make(map[string]*Route, len(routes))}
	for _, r := range routes {
		if r == nil || strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("route without name")
		}
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %s: path %q must start with /", r.Name, r.Path)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %q", r.Name)
		}
		if r.View == "" {
			r.View = r.Name
		}
		r.segments = splitPath(r.Path)
		t.routes = append(t.routes, r)
		t.byName[r.Name] = r
	}
	return t, nil
}

// Routes returns the routes in match order.
func (t *Table) Routes() []*Route {
	return append([]*Route(nil), t.routes...)
}

// ByName returns the route with the given name.
func (t *Table) ByName(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Resolve matches rawPath (optionally with a query string) against the table.
func (t *Table) Resolve(rawPath string) (*Location, bool) {
	u, err := url.Parse(rawPath)
	if err != nil {
		return nil, false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	segs := splitPath(u.EscapedPath())
	for _, r := range t.routes {
		if params, ok := r.match(segs); ok {
			return &Location{Route: r, Path: path, Params: params, Query: u.Query()}, true
		}
	}
	return nil, false
}

func (r *Route) match(segs []string) (map[string]string, bool) {
	if len(segs) != len(r.segments) {
		return nil, false
	}
	var params map[string]string
	for i, s := range r.segments {
		if strings.HasPrefix(s, ":") {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = map[string]string{}
			}
			v, err := url.PathUnescape(segs[i])
			if err != nil {
				return nil, false
			}
			params[s[1:]] = v
			continue
		}
		if s != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
