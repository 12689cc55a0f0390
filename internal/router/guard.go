package router

import (
	"context"
	"errors"
	"fmt"

	"meetingsManagement/models"
)

// ErrLookup wraps a failed session or profile read when the guard is
// configured to propagate failures.
var ErrLookup = errors.New("navigation guard lookup failed")

// Lookups is the capability the guard reads identity through.
type Lookups interface {
	CurrentSession(ctx context.Context) (*models.Session, error)
	ProfileRole(ctx context.Context, userID string) (string, error)
}

// FailurePolicy decides what a failed lookup turns into.
type FailurePolicy string

const (
	// FailPropagate returns the lookup error to the caller.
	FailPropagate FailurePolicy = "propagate"
	// FailToLogin redirects to the login path.
	FailToLogin FailurePolicy = "login"
	// FailToHome redirects to the home path.
	FailToHome FailurePolicy = "home"
)

// Outcome of a guard evaluation.
type Outcome int

const (
	Proceed Outcome = iota
	Redirect
)

func (o Outcome) String() string {
	if o == Redirect {
		return "redirect"
	}
	return "proceed"
}

// Decision is the result of one guard evaluation.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// GuardOptions configures Decide. Zero values take the defaults.
type GuardOptions struct {
	AdminRole string
	OnError   FailurePolicy
	LoginPath string
	HomePath  string
}

func (o GuardOptions) withDefaults() GuardOptions {
	if o.AdminRole == "" {
		o.AdminRole = models.RoleAdmin
	}
	if o.OnError == "" {
		o.OnError = FailPropagate
	}
	if o.LoginPath == "" {
		o.LoginPath = "/login"
	}
	if o.HomePath == "" {
		o.HomePath = "/"
	}
	return o
}

func (o GuardOptions) fail(what string, err error) (Decision, error) {
	switch o.OnError {
	case FailToLogin:
		return redirectTo(o.LoginPath), nil
	case FailToHome:
		return redirectTo(o.HomePath), nil
	default:
		return Decision{}, fmt.Errorf("%w: %s: %v", ErrLookup, what, err)
	}
}

func redirectTo(path string) Decision {
	return Decision{Outcome: Redirect, RedirectTo: path}
}

// Decide evaluates the navigation guard for target route to. A nil target
// is an unmatched path and carries no requirements. The session is always
// read; the profile role only when a session exists and the target requires
// the administrator role. Reads are sequential and never cached.
func Decide(ctx context.Context, to *Route, lookups Lookups, opts GuardOptions) (Decision, error) {
	opts = opts.withDefaults()

	session, err := lookups.CurrentSession(ctx)
	if err != nil {
		return opts.fail("session", err)
	}
	if to == nil {
		return Decision{Outcome: Proceed}, nil
	}

	if to.Meta.RequiresAuth && session == nil {
		return redirectTo(opts.LoginPath), nil
	}
	if session == nil {
		return Decision{Outcome: Proceed}, nil
	}

	if to.Name == RouteLogin || to.Name == RouteSignup {
		return redirectTo(opts.HomePath), nil
	}

	if to.Meta.RequiresAdmin {
		role, err := lookups.ProfileRole(ctx, session.User.ID)
		if err != nil {
			return opts.fail("profile", err)
		}
		if role != opts.AdminRole {
			return redirectTo(opts.HomePath), nil
		}
	}
	return Decision{Outcome: Proceed}, nil
}
