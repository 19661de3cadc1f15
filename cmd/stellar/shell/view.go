package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stellarburgers/internal/router"
	"stellarburgers/internal/types"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================
// Every page renders straight from the containers: the model caches no
// domain data of its own.

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.renderPage()

	if modal := m.history.Current().Modal(); modal != nil {
		body = m.overlay(body, m.renderModal(*modal))
	}
	if m.showOrderConfirm {
		body = m.overlay(body, m.renderOrderConfirm())
	}
	if m.helpShown {
		body = m.overlay(body, m.styles.ModalBox.Render(m.helpView))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderPage() string {
	switch m.history.Current().Page().Route {
	case router.RouteConstructor:
		return m.renderConstructor()
	case router.RouteFeed:
		return m.renderFeed()
	case router.RouteProfileOrders:
		return m.renderProfileOrders()
	case router.RouteLogin, router.RouteRegister, router.RouteForgotPassword,
		router.RouteResetPassword, router.RouteProfile:
		return m.renderForm()
	case router.RouteIngredient:
		return m.renderIngredientPage()
	case router.RouteFeedOrder, router.RouteProfileOrder:
		return m.renderOrderPage()
	}
	return m.styles.Error.Render("Nothing here. Press 1 for the storefront.")
}

// =============================================================================
// CHROME
// =============================================================================

func (m Model) renderHeader() string {
	tabs := []struct {
		key   string
		label string
		route router.Route
	}{
		{"1", "Constructor", router.RouteConstructor},
		{"2", "Feed", router.RouteFeed},
		{"3", "Profile", router.RouteProfile},
		{"4", "My orders", router.RouteProfileOrders},
	}

	current := m.history.Current().Page().Route
	parts := []string{m.styles.Header.Render("Stellar Burgers")}
	for _, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, t.label)
		if t.route == current {
			parts = append(parts, m.styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, m.styles.Tab.Render(label))
		}
	}

	who := "guest"
	if u := m.app.Session.User(); u != nil {
		who = u.Name
	}
	parts = append(parts, m.styles.Muted.Render("("+who+")"))

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.flash != "":
		left = m.styles.Flash.Render(m.flash)
	case m.history.Current().Modal() != nil || m.showOrderConfirm:
		left = m.styles.Muted.Render("esc close")
	default:
		left = m.styles.Muted.Render(m.footerHint())
	}
	return m.styles.Footer.Render(left + "  " + m.styles.Muted.Render("F1 help · ctrl+c quit"))
}

func (m Model) footerHint() string {
	switch m.history.Current().Page().Route {
	case router.RouteConstructor:
		return "↑/↓ select · enter add · tab fillings · i details · o order"
	case router.RouteFeed, router.RouteProfileOrders:
		return "↑/↓ select · enter open · r refresh"
	case router.RouteProfile:
		return "tab next field · enter save · ctrl+o orders · ctrl+l sign out"
	case router.RouteLogin:
		return "enter sign in · ctrl+r register · ctrl+f forgot password"
	}
	return "enter submit · esc back"
}

// =============================================================================
// CONSTRUCTOR PAGE
// =============================================================================

func (m Model) renderConstructor() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCatalogPane(),
		" ",
		m.renderBurgerPane(),
	)
}

func (m Model) renderCatalogPane() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Ingredients") + "\n")

	cat := m.app.Catalog
	switch {
	case cat.Loading():
		sb.WriteString(m.spinner.View() + " loading catalog...")
	case cat.Err() != "":
		sb.WriteString(m.styles.Error.Render(cat.Err()))
	default:
		var lastType types.IngredientType
		for i, ing := range cat.Items() {
			if ing.Type != lastType {
				sb.WriteString(m.styles.Muted.Render(sectionTitle(ing.Type)) + "\n")
				lastType = ing.Type
			}
			line := fmt.Sprintf("%-30s %4d", truncate(ing.Name, 30), ing.Price)
			if i == m.catCursor && !m.focusFillings {
				sb.WriteString(m.styles.Cursor.Render("> "+line) + "\n")
			} else {
				sb.WriteString("  " + line + "\n")
			}
		}
	}

	box := m.styles.Box
	if !m.focusFillings {
		box = m.styles.FocusBox
	}
	return box.Render(sb.String())
}

func (m Model) renderBurgerPane() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Your burger") + "\n")

	ctor := m.app.Constructor
	if bun := ctor.Bun(); bun != nil {
		sb.WriteString(m.styles.Muted.Render("═ ") + bun.Name + " (top)\n")
	} else {
		sb.WriteString(m.styles.Muted.Render("═ pick a bun\n"))
	}

	fillings := ctor.Fillings()
	if len(fillings) == 0 {
		sb.WriteString(m.styles.Muted.Render("  no fillings yet\n"))
	}
	for i, item := range fillings {
		line := fmt.Sprintf("%-28s %4d", truncate(item.Name, 28), item.Price)
		if m.focusFillings && i == m.fillCursor {
			sb.WriteString(m.styles.Cursor.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	if bun := ctor.Bun(); bun != nil {
		sb.WriteString(m.styles.Muted.Render("═ ") + bun.Name + " (bottom)\n")
	}

	sb.WriteString("\n" + m.styles.Price.Render(fmt.Sprintf("Total: %d", ctor.TotalPrice())))
	if m.app.Orders.Submitting() {
		sb.WriteString("\n" + m.spinner.View() + " placing order...")
	} else if err := m.app.Orders.SubmitErr(); err != "" {
		sb.WriteString("\n" + m.styles.Error.Render(err))
	}

	box := m.styles.Box
	if m.focusFillings {
		box = m.styles.FocusBox
	}
	return box.Render(sb.String())
}

// =============================================================================
// ORDER LISTS
// =============================================================================

func (m Model) renderFeed() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Order feed") + "\n")

	feed := m.app.Feed
	total, today := feed.Totals()
	sb.WriteString(m.styles.Muted.Render(
		fmt.Sprintf("completed all time: %d · today: %d", total, today)) + "\n\n")

	switch {
	case feed.Loading() && len(feed.Orders()) == 0:
		sb.WriteString(m.spinner.View() + " loading feed...")
	case feed.Err() != "":
		sb.WriteString(m.styles.Error.Render(feed.Err()))
	default:
		sb.WriteString(m.renderOrderList(feed.Orders(), m.feedCursor))
	}

	return m.styles.Box.Render(sb.String())
}

func (m Model) renderProfileOrders() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("My orders") + "\n")

	ord := m.app.Orders
	switch {
	case ord.Loading() && len(ord.History()) == 0:
		sb.WriteString(m.spinner.View() + " loading orders...")
	case len(ord.History()) == 0:
		sb.WriteString(m.styles.Muted.Render("No orders yet. Build one on the constructor page."))
	default:
		sb.WriteString(m.renderOrderList(ord.History(), m.profCursor))
	}

	return m.styles.Box.Render(sb.String())
}

func (m Model) renderOrderList(orders []types.Order, cursor int) string {
	var sb strings.Builder
	for i, o := range orders {
		line := fmt.Sprintf("#%-6d %-32s %s", o.Number, truncate(o.Name, 32), m.renderStatus(o.Status))
		if i == cursor {
			sb.WriteString(m.styles.Cursor.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

func (m Model) renderStatus(s types.OrderStatus) string {
	if s == types.OrderDone {
		return m.styles.StatusOK.Render(s.Label())
	}
	return m.styles.Muted.Render(s.Label())
}

// =============================================================================
// FORM PAGES
// =============================================================================

var formTitles = map[router.Route]string{
	router.RouteLogin:          "Sign in",
	router.RouteRegister:       "Create account",
	router.RouteForgotPassword: "Restore password",
	router.RouteResetPassword:  "Set a new password",
	router.RouteProfile:        "Profile",
}

func (m Model) renderForm() string {
	route := m.history.Current().Page().Route
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(formTitles[route]) + "\n")

	if m.form != nil {
		for i, label := range m.form.labels {
			sb.WriteString(m.styles.Muted.Render(label) + "\n")
			sb.WriteString(m.form.inputs[i].View() + "\n")
		}
	}

	sess := m.app.Session
	if sess.Loading() {
		sb.WriteString("\n" + m.spinner.View() + " working...")
	} else if sess.Err() != "" {
		sb.WriteString("\n" + m.styles.Error.Render(sess.Err()))
	}

	return m.styles.FocusBox.Render(sb.String())
}

// =============================================================================
// DETAIL PAGES (full-page renditions of the modal content)
// =============================================================================

func (m Model) renderIngredientPage() string {
	return m.styles.Box.Render(m.ingredientDetail(m.history.Current().Loc.Param))
}

func (m Model) renderOrderPage() string {
	return m.styles.Box.Render(m.orderDetail())
}

// =============================================================================
// HELPERS
// =============================================================================

// overlay centers a modal over the page body.
func (m Model) overlay(body, modal string) string {
	w := max(m.width, lipgloss.Width(modal))
	h := max(lipgloss.Height(body), lipgloss.Height(modal))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
}

func sectionTitle(t types.IngredientType) string {
	switch t {
	case types.TypeBun:
		return "Buns"
	case types.TypeSauce:
		return "Sauces"
	case types.TypeMain:
		return "Mains"
	}
	return string(t)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
