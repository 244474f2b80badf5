package session

import "github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"

// Decision is the guard's access verdict for a navigation attempt.
type Decision int

const (
	// Pending means session bootstrap is in progress: render a neutral
	// placeholder and perform no redirect.
	Pending Decision = iota
	// Denied means the navigation is rejected; Outcome.RedirectTo says where
	// to send the user instead.
	Denied
	// Allowed means the requested view may render.
	Allowed
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Denied:
		return "denied"
	case Allowed:
		return "allowed"
	}
	return "unknown"
}

// Route is one entry of the protected route surface.
type Route struct {
	Path      string
	Title     string
	AdminOnly bool
}

const (
	// LoginPath is where unauthenticated navigation is redirected.
	LoginPath = "/login"
	// HomePath is the default authorized view. Under-privileged navigation
	// lands here rather than on an error page, so the existence of admin
	// content is never confirmed.
	HomePath = "/"
)

// DefaultRoutes is the dashboard's protected route surface.
var DefaultRoutes = []Route{
	{Path: "/", Title: "Dashboard"},
	{Path: "/projects", Title: "Projects"},
	{Path: "/ai-assistant", Title: "AI Assistant"},
	{Path: "/bug-tracker", Title: "Bug Tracker"},
	{Path: "/analytics", Title: "Analytics"},
	{Path: "/messages", Title: "Messages"},
	{Path: "/subscriptions", Title: "Subscriptions"},
	{Path: "/admin", Title: "Admin", AdminOnly: true},
}

// Outcome is the result of evaluating one navigation attempt.
type Outcome struct {
	Decision   Decision
	RedirectTo string
}

// Guard gates route access on session state and role. It must be re-evaluated
// on every navigation and on every session change; Watch wires that up.
type Guard struct {
	mgr    *Manager
	routes []Route
}

// NewGuard returns a Guard over the given route surface. A nil routes slice
// uses DefaultRoutes.
func NewGuard(mgr *Manager, routes []Route) *Guard {
	if routes == nil {
		routes = DefaultRoutes
	}
	return &Guard{mgr: mgr, routes: routes}
}

// Evaluate runs the transition rule for a navigation to path:
//
//  1. bootstrap in progress        -> Pending, no redirect
//  2. no authenticated user        -> Denied, redirect to login
//  3. admin route, non-admin user  -> Denied, redirect to the default view
//  4. otherwise                    -> Allowed
//
// Paths not in the route surface fall through to rule 4 once authenticated;
// rendering a not-found view is the shell's concern.
func (g *Guard) Evaluate(path string) Outcome {
	state := g.mgr.State()

	if state.Loading {
		return Outcome{Decision: Pending}
	}
	if state.User == nil {
		return Outcome{Decision: Denied, RedirectTo: LoginPath}
	}

	if route, ok := g.match(path); ok && route.AdminOnly && !state.User.IsAdmin() {
		return Outcome{Decision: Denied, RedirectTo: HomePath}
	}
	return Outcome{Decision: Allowed}
}

// Watch evaluates path now and again on every session change, invoking fn
// each time. A logout while a protected view is mounted immediately produces
// a Denied outcome. The returned cancel stops the watch.
func (g *Guard) Watch(path string, fn func(Outcome)) (cancel func()) {
	fn(g.Evaluate(path))
	return g.mgr.Subscribe(func(State) {
		fn(g.Evaluate(path))
	})
}

// VisibleRoutes returns the menu entries the navigation shell should render
// for the given user: none when logged out, the non-admin surface for
// standard users, everything for admins.
func (g *Guard) VisibleRoutes(user *domain.User) []Route {
	if user == nil {
		return nil
	}
	visible := make([]Route, 0, len(g.routes))
	for _, r := range g.routes {
		if r.AdminOnly && !user.IsAdmin() {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

func (g *Guard) match(path string) (Route, bool) {
	for _, r := range g.routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
