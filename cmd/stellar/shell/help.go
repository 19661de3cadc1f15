package shell

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# Stellar Burgers

## Pages

| Key | Page |
|-----|------|
| 1   | Burger constructor |
| 2   | Live order feed |
| 3   | Profile |
| 4   | My orders |

## Constructor

- **↑/↓** move through the catalog, **enter** adds the selected ingredient
- **tab** switches to the fillings pane: **J/K** reorder, **x** removes
- **i** opens ingredient details, **o** places the order
- Picking a second bun replaces the first. Orders need a bun and a signed-in
  account.

## Orders

- **enter** on any feed or history entry opens its details
- The feed refreshes itself; **r** forces a refresh

## Everywhere

- **esc** closes overlays, then walks back through pages
- **F1** toggles this help, **ctrl+c** quits
`

// renderHelp renders the help overlay. Plain markdown is the fallback when
// the renderer cannot be built for the current terminal.
func renderHelp(width int) string {
	w := width - 8
	if w < 40 || w > 100 {
		w = 72
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
