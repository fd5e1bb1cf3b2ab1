// internal/tui/model.go
//
// Interactive terminal front end built on bubbletea.
//
// Layout, top to bottom: remaining words (the suggestion highlighted), the
// guesses played so far with coloured letters, the word input and one tile per
// letter showing the colour the game gave it.
//
// Keys:
//
//	up/down      cycle the colour of the selected tile
//	left/right   select a tile
//	enter        apply the guess
//	tab          put the suggestion back in the input
//	ctrl+r       start over
//	esc, ctrl+c  quit

package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wormle/internal/solver"
)

// DefaultShowLimit caps how many remaining words are listed.
const DefaultShowLimit = 120

// Model is the bubbletea model for one solver session.
type Model struct {
	sess      *solver.Session
	input     textinput.Model
	marks     solver.Feedback
	cursor    int
	message   string
	width     int
	showLimit int
	styles    Styles
}

// New builds a model around sess with the suggestion pre-filled.
func New(sess *solver.Session) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = strings.Repeat("?", sess.Length)
	in.CharLimit = sess.Length
	in.Width = sess.Length + 2
	in.SetValue(sess.Current)
	in.Focus()

	return Model{
		sess:      sess,
		input:     in,
		marks:     solver.AllAbsent(sess.Length),
		showLimit: DefaultShowLimit,
		styles:    DefaultStyles(),
	}
}

// Run starts the full-screen program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, sess *solver.Session) error {
	p := tea.NewProgram(New(sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "up":
			m.setMark(m.marks[m.cursor].Next())
			return m, nil
		case "down":
			m.setMark(m.marks[m.cursor].Prev())
			return m, nil
		case "left":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "right":
			if m.cursor < len(m.marks)-1 {
				m.cursor++
			}
			return m, nil
		case "tab":
			m.input.SetValue(m.sess.Current)
			return m, nil
		case "ctrl+r":
			m.startOver()
			return m, nil
		case "enter":
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != strings.ToLower(v) {
		m.input.SetValue(strings.ToLower(v))
	}
	return m, cmd
}

// setMark replaces the mark under the cursor without touching older copies.
func (m *Model) setMark(mark solver.Mark) {
	marks := slices.Clone(m.marks)
	marks[m.cursor] = mark
	m.marks = marks
}

func (m *Model) submit() {
	if m.sess.Status.Finished() {
		m.message = "press ctrl+r to start over"
		return
	}
	word := strings.TrimSpace(m.input.Value())
	status, err := m.sess.Submit(solver.Guess{Word: word, Feedback: slices.Clone(m.marks)})
	if err != nil {
		m.message = err.Error()
		return
	}
	log.Debug().Str("session", m.sess.ID).Str("word", word).Int("remaining", len(m.sess.Candidates)).Msg("guess applied")

	// yellows only hold for the word just played; greens usually carry over
	next := make(solver.Feedback, len(m.marks))
	for i, mk := range m.marks {
		if mk == solver.MarkCorrect {
			next[i] = solver.MarkCorrect
		} else {
			next[i] = solver.MarkAbsent
		}
	}
	m.marks = next
	m.message = ""
	if status == solver.StatusContinuing {
		m.input.SetValue(m.sess.Current)
	}
}

func (m *Model) startOver() {
	m.sess.Reset()
	m.marks = solver.AllAbsent(m.sess.Length)
	m.cursor = 0
	m.message = ""
	m.input.SetValue(m.sess.Current)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(
		m.styles.Worm.Render("WOR") + "M" + m.styles.Worm.Render("LE"),
	))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", m.styles.Heading.Render(fmt.Sprintf("Words available (%d):", len(m.sess.Candidates))))
	b.WriteString(m.renderWords())
	b.WriteString("\n")

	if len(m.sess.History) > 0 {
		fmt.Fprintf(&b, "\n%s\n", m.styles.Heading.Render("Previously entered:"))
		for _, g := range m.sess.History {
			b.WriteString("  " + m.renderGuess(g) + "\n")
		}
	}

	if !m.sess.Status.Finished() {
		fmt.Fprintf(&b, "\n%s\n%s\n", m.styles.Heading.Render("Try with:"), m.input.View())
		b.WriteString(m.renderTiles())
		b.WriteString("\n")
	}

	if m.message != "" {
		fmt.Fprintf(&b, "\n%s\n", m.styles.Message.Render(m.message))
	}
	fmt.Fprintf(&b, "\n%s\n", m.styles.Help.Render("↑/↓ colour • ←/→ tile • enter find words • tab suggestion • ctrl+r start over • esc quit"))
	return b.String()
}

func (m Model) renderWords() string {
	switch m.sess.Status {
	case solver.StatusSolved:
		return m.styles.Congrats.Render(fmt.Sprintf("congrats, the word was %s!", m.sess.Current))
	case solver.StatusExhausted:
		return m.styles.Words.Render("no more words :(")
	}

	words := m.sess.Candidates
	more := 0
	if m.showLimit > 0 && len(words) > m.showLimit {
		more = len(words) - m.showLimit
		words = words[:m.showLimit]
	}
	parts := make([]string, 0, len(words)+1)
	for _, w := range words {
		if w == m.sess.Current {
			w = m.styles.Chosen.Render(w)
		}
		parts = append(parts, w)
	}
	if more > 0 {
		parts = append(parts, fmt.Sprintf("(+%d more)", more))
	}
	st := m.styles.Words
	if m.width > 4 {
		st = st.Width(m.width - 4)
	}
	return st.Render(strings.Join(parts, " "))
}

func (m Model) renderGuess(g solver.Guess) string {
	var b strings.Builder
	for i := 0; i < len(g.Word); i++ {
		mark := solver.MarkAbsent
		if i < len(g.Feedback) {
			mark = g.Feedback[i]
		}
		b.WriteString(m.styles.Letter[mark].Render(strings.ToUpper(g.Word[i : i+1])))
	}
	return b.String()
}

func (m Model) renderTiles() string {
	word := m.input.Value()
	tiles := make([]string, len(m.marks))
	for i, mk := range m.marks {
		letter := " "
		if i < len(word) {
			letter = strings.ToUpper(word[i : i+1])
		}
		tiles[i] = m.styles.tile(letter, mk, i == m.cursor)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
