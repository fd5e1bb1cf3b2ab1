package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wormle/internal/solver"
)

// Tile colours follow the game: grey, yellow, green.
var (
	colorAbsent  = lipgloss.Color("#3a3a3c")
	colorPresent = lipgloss.Color("#f7d51d")
	colorCorrect = lipgloss.Color("#4aa52e")
)

// Styles groups every style used by the model's View.
type Styles struct {
	Title    lipgloss.Style
	Worm     lipgloss.Style
	Heading  lipgloss.Style
	Words    lipgloss.Style
	Chosen   lipgloss.Style
	Tile     lipgloss.Style
	Cursor   lipgloss.Style
	Letter   map[solver.Mark]lipgloss.Style
	Message  lipgloss.Style
	Congrats lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Worm:    lipgloss.NewStyle().Foreground(colorCorrect).Bold(true),
		Heading: lipgloss.NewStyle().Bold(true).Underline(true),
		Words:   lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()),
		Chosen:  lipgloss.NewStyle().Reverse(true),
		Tile: lipgloss.NewStyle().
			Bold(true).
			Width(3).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("#ffffff")),
		Cursor: lipgloss.NewStyle().Underline(true),
		Letter: map[solver.Mark]lipgloss.Style{
			solver.MarkAbsent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
			solver.MarkPresent: lipgloss.NewStyle().Foreground(colorPresent),
			solver.MarkCorrect: lipgloss.NewStyle().Foreground(colorCorrect),
		},
		Message:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff7a5a")),
		Congrats: lipgloss.NewStyle().Foreground(colorCorrect).Bold(true),
		Help:     lipgloss.NewStyle().Faint(true),
	}
}

// tile renders one feedback tile.
func (s Styles) tile(letter string, m solver.Mark, selected bool) string {
	bg := colorAbsent
	switch m {
	case solver.MarkPresent:
		bg = colorPresent
	case solver.MarkCorrect:
		bg = colorCorrect
	}
	st := s.Tile.Background(bg)
	if selected {
		st = st.Inherit(s.Cursor)
	}
	return st.Render(letter)
}
