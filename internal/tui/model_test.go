package tui

import (
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wormle/internal/solver"
)

type listSource []string

func (l listSource) Words() []string { return l }

var words = listSource{"sunny", "shout", "sweet", "stove", "spark", "crane"}

func newModel(t *testing.T) Model {
	t.Helper()
	sess, dropped := solver.NewSession("tui", words, 5, solver.WithRand(rand.New(rand.NewPCG(9, 9))))
	require.Empty(t, dropped)
	return New(sess)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// typeWord clears the input and types w.
func typeWord(t *testing.T, m Model, w string) Model {
	t.Helper()
	for i := 0; i < 5; i++ {
		m = press(t, m, key(tea.KeyBackspace))
	}
	for _, r := range w {
		m = press(t, m, runes(string(r)))
	}
	return m
}

func TestNew(t *testing.T) {
	m := newModel(t)

	assert.Equal(t, m.sess.Current, m.input.Value())
	assert.Equal(t, "bbbbb", m.marks.String())
	assert.Equal(t, 0, m.cursor)
	assert.NotNil(t, m.Init())
}

func TestTileNavigationAndMarks(t *testing.T) {
	m := newModel(t)

	m = press(t, m, key(tea.KeyUp))
	assert.Equal(t, "ybbbb", m.marks.String())
	m = press(t, m, key(tea.KeyUp))
	assert.Equal(t, "gbbbb", m.marks.String())
	m = press(t, m, key(tea.KeyUp))
	assert.Equal(t, "bbbbb", m.marks.String())

	m = press(t, m, key(tea.KeyLeft))
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, key(tea.KeyRight), key(tea.KeyRight), key(tea.KeyDown))
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, "bbgbb", m.marks.String())

	for i := 0; i < 10; i++ {
		m = press(t, m, key(tea.KeyRight))
	}
	assert.Equal(t, 4, m.cursor)
}

func TestTypingIsLowercasedAndLimited(t *testing.T) {
	m := newModel(t)
	m = typeWord(t, m, "SPARKS")
	assert.Equal(t, "spark", m.input.Value())

	m = press(t, m, key(tea.KeyTab))
	assert.Equal(t, m.sess.Current, m.input.Value())
}

func TestSubmitKeepsGreensDropsYellows(t *testing.T) {
	m := newModel(t)
	m = typeWord(t, m, "spark")
	m = press(t, m, key(tea.KeyUp), key(tea.KeyUp))
	m = press(t, m, key(tea.KeyEnter))

	assert.ElementsMatch(t, []string{"sunny", "shout", "sweet", "stove"}, m.sess.Candidates)
	assert.Equal(t, "gbbbb", m.marks.String())
	assert.Equal(t, m.sess.Current, m.input.Value())
	assert.Empty(t, m.message)

	m = typeWord(t, m, "sweet")
	m = press(t, m, key(tea.KeyRight), key(tea.KeyRight), key(tea.KeyUp))
	m = press(t, m, key(tea.KeyRight), key(tea.KeyRight), key(tea.KeyUp))
	assert.Equal(t, "gbyby", m.marks.String())
	m = press(t, m, key(tea.KeyEnter))

	assert.Equal(t, []string{"stove"}, m.sess.Candidates)
	assert.Equal(t, "gbbbb", m.marks.String())
	assert.Contains(t, m.View(), "SWEET")
}

func TestSubmitInvalidShowsMessage(t *testing.T) {
	m := newModel(t)
	m = typeWord(t, m, "spa")
	m = press(t, m, key(tea.KeyEnter))

	assert.Contains(t, m.message, "invalid guess shape")
	assert.Len(t, m.sess.Candidates, len(words))
	assert.Contains(t, m.View(), "invalid guess shape")
}

func TestSolvedAndStartOver(t *testing.T) {
	m := newModel(t)
	m = typeWord(t, m, "crane")
	for i := 0; i < 5; i++ {
		m = press(t, m, key(tea.KeyUp), key(tea.KeyUp), key(tea.KeyRight))
	}
	require.Equal(t, "ggggg", m.marks.String())
	m = press(t, m, key(tea.KeyEnter))

	assert.Equal(t, solver.StatusSolved, m.sess.Status)
	assert.Contains(t, m.View(), "congrats, the word was crane!")

	m = press(t, m, key(tea.KeyEnter))
	assert.Equal(t, "press ctrl+r to start over", m.message)

	m = press(t, m, key(tea.KeyCtrlR))
	assert.Equal(t, solver.StatusContinuing, m.sess.Status)
	assert.Len(t, m.sess.Candidates, len(words))
	assert.Equal(t, "bbbbb", m.marks.String())
	assert.Equal(t, 0, m.cursor)
	assert.Empty(t, m.message)
}

func TestExhaustedView(t *testing.T) {
	m := newModel(t)
	m = typeWord(t, m, "zzzzz")
	m = press(t, m, key(tea.KeyUp))
	m = press(t, m, key(tea.KeyEnter))

	assert.Equal(t, solver.StatusExhausted, m.sess.Status)
	assert.Contains(t, m.View(), "no more words :(")
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newModel(t)
		_, cmd := m.Update(key(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestViewListsWords(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	v := m.View()
	assert.Contains(t, v, "Words available (6):")
	assert.Contains(t, v, "sunny")
	assert.Contains(t, v, "Try with:")

	m.showLimit = 2
	assert.Contains(t, m.View(), "(+4 more)")
}
