// internal/solver/types.go
//
// Core type definitions for the solver.
// Defines:
//   - Mark: per-letter feedback (absent/present/correct) with an explicit cycle.
//   - Feedback: one Mark per position of a guess.
//   - Guess: a word paired with the feedback it received.
//   - Status: coarse outcome of a round (continuing/solved/exhausted).

package solver

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mark represents the feedback for a single letter of a guess.
// Possible values:
//   - "absent":  letter does not occur (beyond occurrences confirmed elsewhere).
//   - "present": letter occurs, but not at this position.
//   - "correct": letter occurs at exactly this position.
type Mark string

const (
	MarkAbsent  Mark = "absent"
	MarkPresent Mark = "present"
	MarkCorrect Mark = "correct"
)

// Next returns the mark that follows m when a tile is cycled:
// absent → present → correct → absent. Unknown marks restart at absent.
func (m Mark) Next() Mark {
	switch m {
	case MarkAbsent:
		return MarkPresent
	case MarkPresent:
		return MarkCorrect
	default:
		return MarkAbsent
	}
}

// Prev is the inverse of Next.
func (m Mark) Prev() Mark {
	switch m {
	case MarkCorrect:
		return MarkPresent
	case MarkPresent:
		return MarkAbsent
	default:
		return MarkCorrect
	}
}

// Valid reports whether m is one of the three known marks.
func (m Mark) Valid() bool {
	return m == MarkAbsent || m == MarkPresent || m == MarkCorrect
}

// Symbol is the one-letter shorthand used by text presenters (B/Y/G).
func (m Mark) Symbol() byte {
	switch m {
	case MarkCorrect:
		return 'g'
	case MarkPresent:
		return 'y'
	default:
		return 'b'
	}
}

// ParseMark maps a shorthand symbol or a mark name to a Mark.
func ParseMark(s string) (Mark, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "green", "correct":
		return MarkCorrect, nil
	case "y", "yellow", "present":
		return MarkPresent, nil
	case "b", "black", "x", "-", ".", "_", "gray", "grey", "absent":
		return MarkAbsent, nil
	}
	return "", fmt.Errorf("unknown mark %q", s)
}

// Feedback is the ordered list of marks for one guess.
type Feedback []Mark

// ParseFeedback decodes the compact text form, one symbol per position ("gybbb").
func ParseFeedback(s string) (Feedback, error) {
	s = strings.TrimSpace(s)
	fb := make(Feedback, 0, len(s))
	for _, r := range s {
		m, err := ParseMark(string(r))
		if err != nil {
			return nil, err
		}
		fb = append(fb, m)
	}
	return fb, nil
}

// AllAbsent returns a feedback of n absent marks.
func AllAbsent(n int) Feedback {
	fb := make(Feedback, n)
	for i := range fb {
		fb[i] = MarkAbsent
	}
	return fb
}

// Solved reports whether every mark is correct. An empty feedback is never solved.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, m := range f {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// String renders the compact text form.
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, m := range f {
		b[i] = m.Symbol()
	}
	return string(b)
}

// UnmarshalJSON accepts either the compact string ("gybbb") or an array of mark names.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var compact string
	if err := json.Unmarshal(data, &compact); err == nil {
		fb, err := ParseFeedback(compact)
		if err != nil {
			return err
		}
		*f = fb
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("feedback must be a string or an array of marks: %w", err)
	}
	fb := make(Feedback, len(names))
	for i, n := range names {
		m, err := ParseMark(n)
		if err != nil {
			return err
		}
		fb[i] = m
	}
	*f = fb
	return nil
}

// Guess pairs a word presented to the solver with the feedback it received.
type Guess struct {
	Word     string   `json:"word"`
	Feedback Feedback `json:"feedback"`
}

// Status is the outcome reported to a presenter after each round.
type Status string

const (
	StatusContinuing Status = "continuing"
	StatusSolved     Status = "solved"
	StatusExhausted  Status = "exhausted"
)

// Finished reports whether the session needs a reset before accepting more guesses.
func (s Status) Finished() bool {
	return s == StatusSolved || s == StatusExhausted
}

// StatusOf derives the round status. A solved feedback wins over an empty set.
func StatusOf(fb Feedback, remaining int) Status {
	switch {
	case fb.Solved():
		return StatusSolved
	case remaining == 0:
		return StatusExhausted
	default:
		return StatusContinuing
	}
}
