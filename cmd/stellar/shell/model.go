// Package shell is the interactive terminal storefront. It is split
// across several files:
//   - model.go: model types, construction, Init, async commands
//   - update.go: the Update loop and per-page key handling
//   - view.go: page rendering
//   - modal.go: modal overlays (detail views, order confirmation)
//   - forms.go: text-input forms (login, register, profile, password reset)
//   - help.go: the glamour-rendered help overlay
//
// The shell owns no domain state: every page renders from the injected
// containers, and every intent is a container method call dispatched as a
// bubbletea command. Received messages only tell the shell to re-render.
package shell

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"stellarburgers/internal/app"
	"stellarburgers/internal/router"
)

// Model is the bubbletea model for the storefront shell.
type Model struct {
	app     *app.App
	history *router.History
	styles  styles
	spinner spinner.Model

	width  int
	height int

	// constructor page
	catCursor     int
	fillCursor    int
	focusFillings bool

	// list pages
	feedCursor int
	profCursor int

	// active form, nil outside form routes
	form *form

	// order confirmation modal (not a route; opened by a successful submit)
	showOrderConfirm bool

	flash string

	helpShown bool
	helpView  string

	pollEvery time.Duration
	quitting  bool
}

// New creates the shell model starting at the given path. initialPath acts
// like a direct URL load: detail routes render as full pages, not modals.
func New(a *app.App, initialPath string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		app:       a,
		history:   router.NewHistory(router.Parse(initialPath)),
		styles:    defaultStyles(),
		spinner:   sp,
		pollEvery: a.Cfg.FeedPollInterval(),
	}
	return m.syncRouteState()
}

// Init dispatches the application-start effects: catalog load and session
// restore, plus whatever the initial route needs.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetchCatalog(), m.checkSession()}
	cmds = append(cmds, m.enterRouteCmds(m.history.Current())...)
	return tea.Batch(cmds...)
}

// =============================================================================
// MESSAGES
// =============================================================================
// Containers already hold the results when these arrive; the messages only
// trigger a re-render and page-level follow-ups.

type catalogDoneMsg struct{}
type sessionDoneMsg struct{}
type authDoneMsg struct{}
type profileSavedMsg struct{}
type logoutDoneMsg struct{}
type forgotDoneMsg struct{}
type resetDoneMsg struct{}
type feedDoneMsg struct{}
type myOrdersDoneMsg struct{}
type submitDoneMsg struct{}
type lookupDoneMsg struct{}
type feedTickMsg time.Time

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		m.app.Catalog.Fetch(context.Background())
		return catalogDoneMsg{}
	}
}

func (m Model) checkSession() tea.Cmd {
	return func() tea.Msg {
		m.app.Session.WhoAmI(context.Background())
		return sessionDoneMsg{}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		m.app.Session.Login(context.Background(), email, password)
		return authDoneMsg{}
	}
}

func (m Model) register(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		m.app.Session.Register(context.Background(), name, email, password)
		return authDoneMsg{}
	}
}

func (m Model) saveProfile(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		m.app.Session.UpdateProfile(context.Background(), profileUpdate(name, email, password))
		return profileSavedMsg{}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		m.app.Session.Logout(context.Background())
		return logoutDoneMsg{}
	}
}

func (m Model) forgotPassword(email string) tea.Cmd {
	return func() tea.Msg {
		m.app.Session.ForgotPassword(context.Background(), email)
		return forgotDoneMsg{}
	}
}

func (m Model) resetPassword(password, token string) tea.Cmd {
	return func() tea.Msg {
		m.app.Session.ResetPassword(context.Background(), password, token)
		return resetDoneMsg{}
	}
}

func (m Model) fetchFeed() tea.Cmd {
	return func() tea.Msg {
		m.app.Feed.Fetch(context.Background())
		return feedDoneMsg{}
	}
}

func (m Model) fetchMyOrders() tea.Cmd {
	return func() tea.Msg {
		m.app.Orders.ListMine(context.Background())
		return myOrdersDoneMsg{}
	}
}

func (m Model) submitOrder(ids []string) tea.Cmd {
	return func() tea.Msg {
		m.app.Orders.Submit(context.Background(), ids)
		return submitDoneMsg{}
	}
}

func (m Model) lookupOrder(number int) tea.Cmd {
	return func() tea.Msg {
		m.app.Orders.LookupByNumber(context.Background(), number)
		return lookupDoneMsg{}
	}
}

func (m Model) feedTick() tea.Cmd {
	return tea.Tick(m.pollEvery, func(t time.Time) tea.Msg {
		return feedTickMsg(t)
	})
}

// enterRouteCmds returns the fetches a freshly entered route needs.
func (m Model) enterRouteCmds(entry router.Entry) []tea.Cmd {
	var cmds []tea.Cmd

	switch entry.Page().Route {
	case router.RouteFeed:
		cmds = append(cmds, m.fetchFeed(), m.feedTick())
	case router.RouteProfileOrders:
		cmds = append(cmds, m.fetchMyOrders())
	}

	// A detail route without local data needs a lookup: covers direct
	// loads and modals for orders missing from the fetched lists.
	loc := entry.Loc
	if loc.Route == router.RouteFeedOrder || loc.Route == router.RouteProfileOrder {
		if n, err := strconv.Atoi(loc.Param); err == nil {
			displayed := m.app.Orders.Displayed()
			if displayed == nil || displayed.Number != n {
				cmds = append(cmds, m.lookupOrder(n))
			}
		}
	}
	return cmds
}
