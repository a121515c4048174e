package display

import "github.com/charmbracelet/lipgloss"

// Styles are bound to one lipgloss renderer so the color profile follows
// the writer the output goes to.
type Styles struct {
	Header    lipgloss.Style
	HandInfo  lipgloss.Style
	Actions   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Player    lipgloss.Style
	ToAct     lipgloss.Style
	Folded    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Pane      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Actions: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		ToAct: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Folded: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Pane: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
	}
}
