// Package router resolves in-app locations for the shell.
//
// Routes form a closed enumeration. Detail routes are listed as
// modal-eligible in a fixed table, not inferred from path strings: when
// such a route is entered through in-app navigation the previous page
// location is recorded as its background, and the view renders the
// background as the page with the detail content overlaid as a modal.
// A direct load has no background, so the same route renders as a full
// page. Closing a modal is a single step back in history, restoring the
// prior page and path.
package router

import "strings"

// Route identifies one of the application's pages.
type Route int

const (
	RouteConstructor Route = iota
	RouteFeed
	RouteFeedOrder
	RouteIngredient
	RouteLogin
	RouteRegister
	RouteForgotPassword
	RouteResetPassword
	RouteProfile
	RouteProfileOrders
	RouteProfileOrder
	RouteNotFound
)

// Access is the authentication requirement of a route.
type Access int

const (
	// AccessPublic routes render for everyone.
	AccessPublic Access = iota
	// AccessAuth routes require an authenticated session.
	AccessAuth
	// AccessGuest routes render only for anonymous sessions.
	AccessGuest
)

// routeInfo is the closed route table.
type routeInfo struct {
	access Access
	modal  bool
}

var routes = map[Route]routeInfo{
	RouteConstructor:    {access: AccessPublic},
	RouteFeed:           {access: AccessPublic},
	RouteFeedOrder:      {access: AccessPublic, modal: true},
	RouteIngredient:     {access: AccessPublic, modal: true},
	RouteLogin:          {access: AccessGuest},
	RouteRegister:       {access: AccessGuest},
	RouteForgotPassword: {access: AccessGuest},
	RouteResetPassword:  {access: AccessGuest},
	RouteProfile:        {access: AccessAuth},
	RouteProfileOrders:  {access: AccessAuth},
	RouteProfileOrder:   {access: AccessAuth, modal: true},
	RouteNotFound:       {access: AccessPublic},
}

// Access returns the route's authentication requirement.
func (r Route) Access() Access {
	return routes[r].access
}

// ModalEligible reports whether the route may render as a modal over a
// background page.
func (r Route) ModalEligible() bool {
	return routes[r].modal
}

// Location is a resolved route plus its dynamic segment, if any.
type Location struct {
	Route Route
	Param string // order number or ingredient ID
	Path  string
}

// Parse resolves a path against the route table. Unknown paths resolve to
// RouteNotFound.
func Parse(path string) Location {
	clean := strings.Trim(path, "/")
	loc := Location{Path: "/" + clean}
	if clean == "" {
		loc.Route = RouteConstructor
		loc.Path = "/"
		return loc
	}

	seg := strings.Split(clean, "/")
	switch {
	case len(seg) == 1 && seg[0] == "feed":
		loc.Route = RouteFeed
	case len(seg) == 2 && seg[0] == "feed":
		loc.Route, loc.Param = RouteFeedOrder, seg[1]
	case len(seg) == 2 && seg[0] == "ingredients":
		loc.Route, loc.Param = RouteIngredient, seg[1]
	case len(seg) == 1 && seg[0] == "login":
		loc.Route = RouteLogin
	case len(seg) == 1 && seg[0] == "register":
		loc.Route = RouteRegister
	case len(seg) == 1 && seg[0] == "forgot-password":
		loc.Route = RouteForgotPassword
	case len(seg) == 1 && seg[0] == "reset-password":
		loc.Route = RouteResetPassword
	case len(seg) == 1 && seg[0] == "profile":
		loc.Route = RouteProfile
	case len(seg) == 2 && seg[0] == "profile" && seg[1] == "orders":
		loc.Route = RouteProfileOrders
	case len(seg) == 3 && seg[0] == "profile" && seg[1] == "orders":
		loc.Route, loc.Param = RouteProfileOrder, seg[2]
	default:
		loc.Route = RouteNotFound
	}
	return loc
}

// Entry is one history record: the target location plus the background
// page it overlays, when the navigation opened a modal.
type Entry struct {
	Loc        Location
	Background *Location
}

// Page returns the location that renders as the full page for this entry.
func (e Entry) Page() Location {
	if e.Background != nil {
		return *e.Background
	}
	return e.Loc
}

// Modal returns the location rendered as an overlay, nil when the entry is
// a plain page.
func (e Entry) Modal() *Location {
	if e.Background == nil {
		return nil
	}
	loc := e.Loc
	return &loc
}

// History is the in-app navigation stack.
type History struct {
	stack []Entry
}

// NewHistory starts history at the given location. The initial entry is a
// direct load: it never carries a background, so detail routes entered
// this way render as full pages.
func NewHistory(initial Location) *History {
	return &History{stack: []Entry{{Loc: initial}}}
}

// Push performs an in-app navigation. A modal-eligible target records the
// currently visible page as its background.
func (h *History) Push(loc Location) {
	entry := Entry{Loc: loc}
	if loc.Route.ModalEligible() {
		page := h.Current().Page()
		entry.Background = &page
	}
	h.stack = append(h.stack, entry)
}

// Replace swaps the current entry without growing history, for redirects
// (e.g. an anonymous visit to a protected route).
func (h *History) Replace(loc Location) {
	h.stack[len(h.stack)-1] = Entry{Loc: loc}
}

// Back steps one entry back, restoring the prior page and path. At the
// bottom of the stack it is a no-op.
func (h *History) Back() {
	if len(h.stack) > 1 {
		h.stack = h.stack[:len(h.stack)-1]
	}
}

// Current returns the active history entry.
func (h *History) Current() Entry {
	return h.stack[len(h.stack)-1]
}

// Depth returns the number of history entries.
func (h *History) Depth() int {
	return len(h.stack)
}
