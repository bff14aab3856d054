// Package guard decides whether a protected page may render for the current session.
package guard

import (
	"slices"

	"retail-admin-web/internal/model"
)

// Default destinations.
const (
	LoginPath     = "/login"
	AdminHomePath = "/admin/dashboard"
	UserHomePath  = "/user/dashboard"
	PublicHome    = "/"
)

// Outcome is what the caller must do with the protected view.
type Outcome int

const (
	// Render shows the protected content unchanged.
	Render Outcome = iota
	// Defer renders nothing because the session state is not established yet.
	Defer
	// Redirect sends the browser to Decision.Location.
	Redirect
)

// State is the session state the guard decides on.
type State struct {
	// Ready is false while the session could not be loaded yet.
	Ready         bool
	Authenticated bool
	Role          model.Role
}

// Decision is the result of Decide.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide applies the guard rules. An empty allowed list admits any authenticated role.
func Decide(st State, allowed []model.Role) Decision {
	if !st.Ready {
		return Decision{Outcome: Defer}
	}
	if !st.Authenticated {
		return Decision{Outcome: Redirect, Location: LoginPath}
	}
	if len(allowed) > 0 && !slices.Contains(allowed, st.Role) {
		return Decision{Outcome: Redirect, Location: HomeFor(st.Role)}
	}
	return Decision{Outcome: Render}
}

// HomeFor returns the landing page of a role.
func HomeFor(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return AdminHomePath
	case model.RoleUser:
		return UserHomePath
	default:
		return PublicHome
	}
}
