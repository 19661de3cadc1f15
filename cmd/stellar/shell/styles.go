package shell

import "github.com/charmbracelet/lipgloss"

// styles groups the lipgloss styles used across the shell views.
type styles struct {
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Title     lipgloss.Style
	Box       lipgloss.Style
	FocusBox  lipgloss.Style
	ModalBox  lipgloss.Style
	Cursor    lipgloss.Style
	Muted     lipgloss.Style
	Price     lipgloss.Style
	Error     lipgloss.Style
	Flash     lipgloss.Style
	StatusOK  lipgloss.Style
	Footer    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		FocusBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 1),
		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(1, 2),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		Price: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Flash: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		StatusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}
