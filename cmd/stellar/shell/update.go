package shell

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"stellarburgers/internal/router"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionDoneMsg:
		// The startup auth check resolved; enforce access on wherever we are.
		return m.enforceAccess()

	case authDoneMsg:
		if m.app.Session.User() != nil {
			// Logged in: leave the guest-only page for the storefront.
			return m.navigateReplace(router.Parse("/"))
		}
		return m, nil

	case logoutDoneMsg:
		return m.enforceAccess()

	case forgotDoneMsg:
		if m.app.Session.Err() == "" {
			return m.navigateReplace(router.Parse("/reset-password"))
		}
		return m, nil

	case resetDoneMsg:
		if m.app.Session.Err() == "" {
			m.flash = "Password updated, sign in with it now"
			return m.navigateReplace(router.Parse("/login"))
		}
		return m, nil

	case submitDoneMsg:
		if m.app.Orders.SubmitErr() == "" && m.app.Orders.Displayed() != nil {
			m.showOrderConfirm = true
		}
		return m, nil

	case profileSavedMsg:
		if m.app.Session.Err() == "" {
			m.flash = "Profile saved"
		}
		return m, nil

	case feedTickMsg:
		// Poll only while the feed page is actually visible.
		if m.history.Current().Page().Route == router.RouteFeed {
			return m, tea.Batch(m.fetchFeed(), m.feedTick())
		}
		return m, nil

	case catalogDoneMsg, feedDoneMsg, myOrdersDoneMsg, lookupDoneMsg:
		return m, nil
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

// =============================================================================
// NAVIGATION
// =============================================================================

// guard substitutes redirect targets for locations the session may not
// visit.
func (m Model) guard(loc router.Location) router.Location {
	switch loc.Route.Access() {
	case router.AccessAuth:
		if m.app.Session.User() == nil {
			return router.Parse("/login")
		}
	case router.AccessGuest:
		if m.app.Session.User() != nil {
			return router.Parse("/")
		}
	}
	if loc.Route == router.RouteResetPassword && !m.app.Session.ResetAllowed() {
		return router.Parse("/forgot-password")
	}
	return loc
}

// navigate performs an in-app navigation (modal-eligible targets overlay
// the current page).
func (m Model) navigate(loc router.Location) (Model, tea.Cmd) {
	m.history.Push(m.guard(loc))
	return m.afterNavigate()
}

// navigateReplace swaps the current entry, for redirects.
func (m Model) navigateReplace(loc router.Location) (Model, tea.Cmd) {
	m.history.Replace(m.guard(loc))
	return m.afterNavigate()
}

func (m Model) afterNavigate() (Model, tea.Cmd) {
	m.flash = ""
	m = m.syncRouteState()
	return m, tea.Batch(m.enterRouteCmds(m.history.Current())...)
}

// enforceAccess re-checks the current entry after an auth transition.
func (m Model) enforceAccess() (Model, tea.Cmd) {
	cur := m.history.Current().Loc
	if guarded := m.guard(cur); guarded.Route != cur.Route {
		return m.navigateReplace(guarded)
	}
	m = m.syncRouteState()
	return m, nil
}

// syncRouteState rebuilds per-page state (forms, cursors) for the current
// entry.
func (m Model) syncRouteState() Model {
	page := m.history.Current().Page().Route
	if m.history.Current().Modal() == nil {
		m.form = newForm(page, m.app.Session.User())
	}
	m.feedCursor = 0
	m.profCursor = 0
	return m
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys first.
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		return m.handleEscape()
	}

	if msg.Type == tea.KeyF1 {
		return m.toggleHelp()
	}

	if m.helpShown {
		// Any key below F1/Esc is swallowed while help is up.
		return m, nil
	}

	if m.showOrderConfirm {
		if msg.Type == tea.KeyEnter {
			return m.closeOrderConfirm()
		}
		return m, nil
	}

	if modal := m.history.Current().Modal(); modal != nil {
		// Modal overlays only respond to close.
		return m, nil
	}

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	return m.handlePageKey(msg)
}

func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch {
	case m.helpShown:
		m.helpShown = false
		return m, nil
	case m.showOrderConfirm:
		return m.closeOrderConfirm()
	case m.history.Current().Modal() != nil:
		m.history.Back()
		m = m.syncRouteState()
		return m, nil
	case m.history.Depth() > 1:
		m.history.Back()
		return m.afterNavigate()
	}
	return m, nil
}

// closeOrderConfirm dismisses the confirmation and applies the view
// policy: a confirmed order empties the construction area.
func (m Model) closeOrderConfirm() (tea.Model, tea.Cmd) {
	m.showOrderConfirm = false
	m.app.Orders.ClearDisplayed()
	m.app.Constructor.Clear()
	m.fillCursor = 0
	m.focusFillings = false
	return m, nil
}

func (m Model) toggleHelp() (tea.Model, tea.Cmd) {
	if !m.helpShown && m.helpView == "" {
		m.helpView = renderHelp(m.width)
	}
	m.helpShown = !m.helpShown
	return m, nil
}

func (m Model) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Page switching is available wherever no text input is focused.
	switch msg.String() {
	case "1":
		return m.navigate(router.Parse("/"))
	case "2":
		return m.navigate(router.Parse("/feed"))
	case "3":
		return m.navigate(router.Parse("/profile"))
	case "4":
		return m.navigate(router.Parse("/profile/orders"))
	case "?":
		return m.toggleHelp()
	}

	switch m.history.Current().Page().Route {
	case router.RouteConstructor:
		return m.handleConstructorKey(msg)
	case router.RouteFeed:
		return m.handleFeedKey(msg)
	case router.RouteProfileOrders:
		return m.handleProfileOrdersKey(msg)
	}
	return m, nil
}

func (m Model) handleConstructorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.app.Catalog.Items()
	fillings := m.app.Constructor.Fillings()

	switch msg.String() {
	case "tab":
		m.focusFillings = !m.focusFillings
		return m, nil

	case "up":
		if m.focusFillings {
			m.fillCursor = max(0, m.fillCursor-1)
		} else {
			m.catCursor = max(0, m.catCursor-1)
		}
		return m, nil

	case "down":
		if m.focusFillings {
			m.fillCursor = max(0, min(len(fillings)-1, m.fillCursor+1))
		} else {
			m.catCursor = max(0, min(len(items)-1, m.catCursor+1))
		}
		return m, nil

	case "enter", " ":
		if !m.focusFillings && m.catCursor < len(items) {
			m.app.Constructor.Add(items[m.catCursor])
		}
		return m, nil

	case "i":
		if !m.focusFillings && m.catCursor < len(items) {
			return m.navigate(router.Parse("/ingredients/" + items[m.catCursor].ID))
		}
		return m, nil

	case "x", "backspace":
		if m.focusFillings && len(fillings) > 0 {
			m.app.Constructor.RemoveAt(m.fillCursor)
			m.fillCursor = min(m.fillCursor, len(fillings)-2)
			m.fillCursor = max(0, m.fillCursor)
		}
		return m, nil

	case "K", "shift+up":
		if m.focusFillings && m.fillCursor > 0 {
			m.app.Constructor.Move(m.fillCursor, m.fillCursor-1)
			m.fillCursor--
		}
		return m, nil

	case "J", "shift+down":
		if m.focusFillings && m.fillCursor < len(fillings)-1 {
			m.app.Constructor.Move(m.fillCursor, m.fillCursor+1)
			m.fillCursor++
		}
		return m, nil

	case "C":
		m.app.Constructor.Clear()
		m.fillCursor = 0
		return m, nil

	case "o":
		return m.placeOrder()
	}
	return m, nil
}

// placeOrder enforces the view-side constraints: a bun must be selected
// and the user must be signed in before an order is submitted.
func (m Model) placeOrder() (tea.Model, tea.Cmd) {
	ids := m.app.Constructor.SubmissionIDs()
	if ids == nil {
		m.flash = "Pick a bun first: a burger needs its top and bottom"
		return m, nil
	}
	if m.app.Session.User() == nil {
		return m.navigate(router.Parse("/login"))
	}
	return m, m.submitOrder(ids)
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	orders := m.app.Feed.Orders()

	switch msg.String() {
	case "up":
		m.feedCursor = max(0, m.feedCursor-1)
	case "down":
		m.feedCursor = max(0, min(len(orders)-1, m.feedCursor+1))
	case "r":
		return m, m.fetchFeed()
	case "enter":
		if m.feedCursor < len(orders) {
			order := orders[m.feedCursor]
			// The order is already on hand; no refetch for the modal.
			m.app.Orders.SetDisplayed(&order)
			return m.navigate(router.Parse(fmt.Sprintf("/feed/%d", order.Number)))
		}
	}
	return m, nil
}

func (m Model) handleProfileOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	orders := m.app.Orders.History()

	switch msg.String() {
	case "up":
		m.profCursor = max(0, m.profCursor-1)
	case "down":
		m.profCursor = max(0, min(len(orders)-1, m.profCursor+1))
	case "r":
		return m, m.fetchMyOrders()
	case "enter":
		if m.profCursor < len(orders) {
			order := orders[m.profCursor]
			m.app.Orders.SetDisplayed(&order)
			return m.navigate(router.Parse(fmt.Sprintf("/profile/orders/%d", order.Number)))
		}
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "up", "shift+tab":
		f.cycle(-1)
		return m, nil
	case "down", "tab":
		f.cycle(1)
		return m, nil
	case "enter":
		if f.focus < len(f.inputs)-1 {
			f.cycle(1)
			return m, nil
		}
		return m.submitForm()
	}

	// Route-specific shortcuts that do not collide with typing.
	switch f.route {
	case router.RouteLogin:
		switch msg.String() {
		case "ctrl+r":
			return m.navigate(router.Parse("/register"))
		case "ctrl+f":
			return m.navigate(router.Parse("/forgot-password"))
		}
	case router.RouteProfile:
		switch msg.String() {
		case "ctrl+o":
			return m.navigate(router.Parse("/profile/orders"))
		case "ctrl+l":
			return m, m.logout()
		}
	}

	return m, f.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form

	switch f.route {
	case router.RouteLogin:
		if !f.filled() {
			m.flash = "Email and password are required"
			return m, nil
		}
		return m, m.login(f.value(0), f.value(1))

	case router.RouteRegister:
		if !f.filled() {
			m.flash = "All fields are required"
			return m, nil
		}
		return m, m.register(f.value(0), f.value(1), f.value(2))

	case router.RouteForgotPassword:
		if !f.filled() {
			m.flash = "Enter the account email"
			return m, nil
		}
		return m, m.forgotPassword(f.value(0))

	case router.RouteResetPassword:
		if !f.filled() {
			m.flash = "Both fields are required"
			return m, nil
		}
		return m, m.resetPassword(f.value(0), f.value(1))

	case router.RouteProfile:
		// Password is optional on profile save.
		if f.value(0) == "" || f.value(1) == "" {
			m.flash = "Name and email are required"
			return m, nil
		}
		return m, m.saveProfile(f.value(0), f.value(1), f.value(2))
	}
	return m, nil
}
