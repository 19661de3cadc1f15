package shell

import (
	"fmt"
	"strings"

	"stellarburgers/internal/router"
)

// =============================================================================
// MODAL OVERLAYS
// =============================================================================
// Detail content is shared between the modal overlays and the full-page
// detail routes, so a direct load shows exactly what the modal would.

func (m Model) renderModal(loc router.Location) string {
	switch loc.Route {
	case router.RouteIngredient:
		return m.styles.ModalBox.Render(m.ingredientDetail(loc.Param))
	case router.RouteFeedOrder, router.RouteProfileOrder:
		return m.styles.ModalBox.Render(m.orderDetail())
	}
	return ""
}

func (m Model) ingredientDetail(id string) string {
	ing, ok := m.app.Catalog.ByID(id)
	if !ok {
		if m.app.Catalog.Loading() {
			return m.spinner.View() + " loading catalog..."
		}
		return m.styles.Error.Render("Unknown ingredient")
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(ing.Name) + "\n")
	sb.WriteString(m.styles.Muted.Render("Nutrition per serving") + "\n")
	sb.WriteString(fmt.Sprintf("  Calories      %d\n", ing.Calories))
	sb.WriteString(fmt.Sprintf("  Proteins      %d\n", ing.Proteins))
	sb.WriteString(fmt.Sprintf("  Fat           %d\n", ing.Fat))
	sb.WriteString(fmt.Sprintf("  Carbohydrates %d\n", ing.Carbohydrates))
	sb.WriteString("\n" + m.styles.Price.Render(fmt.Sprintf("Price: %d", ing.Price)))
	return sb.String()
}

func (m Model) orderDetail() string {
	order := m.app.Orders.Displayed()
	if order == nil {
		if err := m.app.Orders.LookupErr(); err != "" {
			return m.styles.Error.Render(err)
		}
		return m.spinner.View() + " loading order..."
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("#%d %s", order.Number, order.Name)) + "\n")
	sb.WriteString(m.renderStatus(order.Status) + "\n\n")

	// Collapse repeated ingredient IDs into counted lines; the bun shows
	// twice in the submission order so it collapses to x2.
	counts := map[string]int{}
	var seen []string
	for _, id := range order.Ingredients {
		if counts[id] == 0 {
			seen = append(seen, id)
		}
		counts[id]++
	}

	total := 0
	for _, id := range seen {
		name, price := id, 0
		if ing, ok := m.app.Catalog.ByID(id); ok {
			name, price = ing.Name, ing.Price
		}
		n := counts[id]
		total += n * price
		sb.WriteString(fmt.Sprintf("  %-30s x%d %5d\n", truncate(name, 30), n, n*price))
	}

	sb.WriteString("\n" + m.styles.Muted.Render(order.CreatedAt.Format("2006-01-02 15:04")))
	sb.WriteString("\n" + m.styles.Price.Render(fmt.Sprintf("Total: %d", total)))
	return sb.String()
}

// renderOrderConfirm shows the identifier of a just-placed order. Closing
// it clears the constructor.
func (m Model) renderOrderConfirm() string {
	order := m.app.Orders.Displayed()
	if order == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Order #%d", order.Number)) + "\n")
	sb.WriteString(order.Name + "\n\n")
	sb.WriteString(m.styles.StatusOK.Render("Your order is being cooked") + "\n")
	sb.WriteString(m.styles.Muted.Render("Watch for it in the feed. esc to close."))
	return m.styles.ModalBox.Render(sb.String())
}
