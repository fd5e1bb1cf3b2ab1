// internal/solver/session.go
//
// Session owns one solving attempt: the candidate set, the history of guesses,
// the word currently proposed to the user and the round status.
//
// Notes:
//   - A session is owned by exactly one caller; it does no locking of its own.
//   - Candidates only shrink between resets.
//   - Solved and exhausted sessions reject guesses until Reset is called.

package solver

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

// WordSource supplies the initial candidate list for a session.
type WordSource interface {
	Words() []string
}

// Session holds the state of a single solving attempt.
type Session struct {
	ID         string    // Caller-assigned identifier.
	Length     int       // Fixed word length for this session.
	Candidates []string  // Words still consistent with every guess.
	History    []Guess   // Guesses applied so far, oldest first.
	Current    string    // Word proposed for the next round.
	Status     Status    // Outcome of the latest round.
	CreatedAt  time.Time // When the session was created.
	UpdatedAt  time.Time // Last guess or reset.

	source  WordSource
	shuffle bool
	rng     *rand.Rand
}

// Option configures a Session.
type Option func(*Session)

// WithShuffle shuffles the candidate list on creation and on every reset.
func WithShuffle(on bool) Option {
	return func(s *Session) { s.shuffle = on }
}

// WithRand sets the random source used for shuffling and suggestions.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// NewSession seeds a session from src. Source words that do not fit length are
// dropped and returned as *WordError values for the caller to report.
func NewSession(id string, src WordSource, length int, opts ...Option) (*Session, []error) {
	s := &Session{ID: id, Length: length, source: src, CreatedAt: time.Now()}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	dropped := s.Reset()
	return s, dropped
}

// Reset discards candidates, history and the current word and re-seeds from the
// word source.
func (s *Session) Reset() []error {
	var raw []string
	if s.source != nil {
		raw = s.source.Words()
	}
	candidates, dropped := NewCandidateSet(raw, s.Length)
	if s.shuffle {
		s.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	s.Candidates = candidates
	s.History = []Guess{}
	s.Status = StatusOf(nil, len(candidates))
	s.Current = Suggest(candidates, 0, s.rng)
	s.UpdatedAt = time.Now()
	return dropped
}

// Submit applies one round of feedback. A malformed guess leaves the session
// untouched and returns an error wrapping ErrInvalidGuessShape.
func (s *Session) Submit(g Guess) (Status, error) {
	if s.Status.Finished() {
		return s.Status, ErrSessionFinished
	}
	g.Word = strings.ToLower(strings.TrimSpace(g.Word))

	next, err := ApplyGuess(s.Candidates, g, s.Length)
	if err != nil {
		return s.Status, err
	}

	s.Candidates = next
	s.History = append(s.History, Guess{Word: g.Word, Feedback: slices.Clone(g.Feedback)})
	s.Status = StatusOf(g.Feedback, len(next))
	s.UpdatedAt = time.Now()
	if s.Status == StatusSolved {
		s.Current = g.Word
	} else {
		s.Current = Suggest(next, len(s.History), s.rng)
	}
	return s.Status, nil
}

// SetCurrent replaces the word proposed for the next round.
func (s *Session) SetCurrent(word string) {
	s.Current = strings.ToLower(strings.TrimSpace(word))
}

// Round is the number of guesses applied since the last reset.
func (s *Session) Round() int {
	return len(s.History)
}

// Autoplay plays the session against a known secret, submitting the current
// suggestion scored by Score until the session finishes or maxRounds is reached.
func Autoplay(s *Session, secret string, maxRounds int) (Status, error) {
	secret = strings.ToLower(strings.TrimSpace(secret))
	for s.Round() < maxRounds && !s.Status.Finished() {
		guess := s.Current
		if _, err := s.Submit(Guess{Word: guess, Feedback: Score(secret, guess)}); err != nil {
			return s.Status, err
		}
	}
	return s.Status, nil
}
