// internal/solver/filter.go
//
// Feedback-to-constraint translation and candidate pruning.
//
// ApplyGuess runs two passes over the feedback:
//
//	Pass 1: collect the allowed letters (every letter marked present or correct).
//	Pass 2: for each position in order, narrow the surviving set:
//	  - correct: keep words with the letter at this position.
//	  - present: keep words containing the letter, but not at this position.
//	  - absent:  if the letter is allowed elsewhere in the guess, keep words that
//	             do not have it at this position; otherwise keep words without it.
//
// Pass 1 must finish before pass 2 starts: an absent mark on a duplicated letter
// means "no further occurrence", not "never occurs".

package solver

import (
	"strings"

	"github.com/samber/lo"
)

// ApplyGuess prunes candidates with one round of feedback and returns the survivors.
// The input slice is never modified. On a malformed guess the input is returned as
// is, together with an error wrapping ErrInvalidGuessShape.
func ApplyGuess(candidates []string, g Guess, length int) ([]string, error) {
	if err := checkShape(g, length); err != nil {
		return candidates, err
	}

	allowed := allowedLetters(g)

	survivors := candidates
	for i, m := range g.Feedback {
		c := g.Word[i]
		survivors = lo.Filter(survivors, func(w string, _ int) bool {
			return satisfies(w, i, c, m, allowed)
		})
	}
	if survivors == nil {
		survivors = []string{}
	}
	return survivors, nil
}

// checkShape validates the guess against the session length.
func checkShape(g Guess, length int) error {
	if len(g.Word) != length || len(g.Feedback) != length || !isAlpha(g.Word) {
		return &ShapeError{Word: g.Word, FeedbackLen: len(g.Feedback), Want: length}
	}
	for _, m := range g.Feedback {
		if !m.Valid() {
			return &ShapeError{Word: g.Word, FeedbackLen: len(g.Feedback), Want: length}
		}
	}
	return nil
}

// allowedLetters is the set of letters confirmed to occur at least once.
func allowedLetters(g Guess) map[byte]struct{} {
	allowed := make(map[byte]struct{}, len(g.Word))
	for i, m := range g.Feedback {
		if m == MarkPresent || m == MarkCorrect {
			allowed[g.Word[i]] = struct{}{}
		}
	}
	return allowed
}

// satisfies reports whether word w is consistent with mark m for letter c at position i.
func satisfies(w string, i int, c byte, m Mark, allowed map[byte]struct{}) bool {
	switch m {
	case MarkCorrect:
		return w[i] == c
	case MarkPresent:
		return w[i] != c && strings.IndexByte(w, c) >= 0
	default:
		if _, ok := allowed[c]; ok {
			return w[i] != c
		}
		return strings.IndexByte(w, c) < 0
	}
}

// NewCandidateSet normalises source words and validates them against length.
// Invalid entries are dropped and reported as *WordError values; duplicates are
// removed keeping first occurrence order.
func NewCandidateSet(words []string, length int) ([]string, []error) {
	var dropped []error
	valid := lo.FilterMap(words, func(raw string, _ int) (string, bool) {
		w := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case len(w) != length:
			dropped = append(dropped, &WordError{Word: raw, Cause: ErrInvalidWordLength})
			return "", false
		case !isAlpha(w):
			dropped = append(dropped, &WordError{Word: raw, Cause: ErrInvalidLetters})
			return "", false
		}
		return w, true
	})
	return lo.Uniq(valid), dropped
}

// isAlpha reports whether s is non-empty and all lowercase a-z.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// hasRepeats reports whether any letter occurs more than once in w.
func hasRepeats(w string) bool {
	var seen [26]bool
	for i := 0; i < len(w); i++ {
		j := w[i] - 'a'
		if j >= 26 {
			continue
		}
		if seen[j] {
			return true
		}
		seen[j] = true
	}
	return false
}
