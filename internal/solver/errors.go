package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGuessShape is returned when a guess word, its feedback and the
	// session length disagree, or the word contains non-letters.
	ErrInvalidGuessShape = errors.New("invalid guess shape")

	// ErrInvalidWordLength marks a source word that does not match the session length.
	ErrInvalidWordLength = errors.New("invalid word length")

	// ErrInvalidLetters marks a source word containing characters outside a-z.
	ErrInvalidLetters = errors.New("invalid letters")

	// ErrSessionFinished is returned when a guess is submitted to a solved or
	// exhausted session. The session must be reset first.
	ErrSessionFinished = errors.New("session finished")
)

// ShapeError describes a rejected guess.
type ShapeError struct {
	Word        string
	FeedbackLen int
	Want        int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: word %q (%d letters), feedback %d marks, want %d",
		ErrInvalidGuessShape, e.Word, len(e.Word), e.FeedbackLen, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidGuessShape
}

// WordError describes a source word dropped during ingestion.
type WordError struct {
	Word  string
	Cause error
}

func (e *WordError) Error() string {
	return fmt.Sprintf("%v: %q", e.Cause, e.Word)
}

func (e *WordError) Unwrap() error {
	return e.Cause
}
