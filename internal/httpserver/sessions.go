// internal/httpserver/sessions.go
//
// Session handlers: create, inspect, guess, reset, delete.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wormle/internal/solver"
	"github.com/robalobadob/wormle/internal/store"
)

// defaultCandidateLimit caps the candidate list in a session view when no ?limit is given.
const defaultCandidateLimit = 50

type createReq struct {
	Shuffle *bool `json:"shuffle"`
}

type createRes struct {
	SessionID  string        `json:"sessionId"`
	Token      string        `json:"token"`
	ExpiresAt  time.Time     `json:"expiresAt"`
	Length     int           `json:"length"`
	Status     solver.Status `json:"status"`
	Remaining  int           `json:"remaining"`
	Suggestion string        `json:"suggestion"`
}

type guessReq struct {
	Word     string          `json:"word"`
	Feedback solver.Feedback `json:"feedback"`
}

type guessView struct {
	Word     string `json:"word"`
	Feedback string `json:"feedback"`
}

type sessionView struct {
	SessionID  string        `json:"sessionId"`
	Length     int           `json:"length"`
	Status     solver.Status `json:"status"`
	Round      int           `json:"round"`
	Remaining  int           `json:"remaining"`
	Candidates []string      `json:"candidates"`
	History    []guessView   `json:"history"`
	Suggestion string        `json:"suggestion"`
}

// newView renders a session, keeping at most limit candidates (0 = all).
func newView(s *solver.Session, limit int) sessionView {
	cands := s.Candidates
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	hist := make([]guessView, 0, len(s.History))
	for _, g := range s.History {
		hist = append(hist, guessView{Word: g.Word, Feedback: g.Feedback.String()})
	}
	return sessionView{
		SessionID:  s.ID,
		Length:     s.Length,
		Status:     s.Status,
		Round:      s.Round(),
		Remaining:  len(s.Candidates),
		Candidates: append([]string{}, cands...),
		History:    hist,
		Suggestion: s.Current,
	}
}

// handleCreate sweeps idle sessions, then starts a new one and issues its token.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	shuffle := s.opts.Shuffle
	if req.Shuffle != nil {
		shuffle = *req.Shuffle
	}

	if n := s.store.Sweep(r.Context(), s.opts.SessionTTL); n > 0 {
		log.Info().Int("swept", n).Msg("expired idle sessions")
	}

	id := store.NewID()
	sess, dropped := solver.NewSession(id, s.opts.Words, s.opts.Length, solver.WithShuffle(shuffle))
	if len(dropped) > 0 {
		log.Debug().Str("session", id).Int("dropped", len(dropped)).Err(dropped[0]).Msg("source words rejected")
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Str("session", id).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.tokens.issue(id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		_ = s.store.Delete(r.Context(), id)
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	log.Info().Str("session", id).Int("remaining", len(sess.Candidates)).Bool("shuffle", shuffle).Msg("session created")
	writeJSON(w, http.StatusCreated, createRes{
		SessionID:  id,
		Token:      tok,
		ExpiresAt:  exp.UTC(),
		Length:     sess.Length,
		Status:     sess.Status,
		Remaining:  len(sess.Candidates),
		Suggestion: sess.Current,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	limit := defaultCandidateLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newView(sess, limit))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_guess_shape")
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.store.Update(r.Context(), id, func(sess *solver.Session) error {
		_, err := sess.Submit(solver.Guess{Word: req.Word, Feedback: req.Feedback})
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	log.Info().
		Str("session", id).
		Str("word", sess.History[len(sess.History)-1].Word).
		Str("feedback", req.Feedback.String()).
		Int("remaining", len(sess.Candidates)).
		Str("status", string(sess.Status)).
		Msg("guess applied")
	writeJSON(w, http.StatusOK, newView(sess, defaultCandidateLimit))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Update(r.Context(), id, func(sess *solver.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	log.Info().Str("session", id).Int("remaining", len(sess.Candidates)).Msg("session reset")
	writeJSON(w, http.StatusOK, newView(sess, defaultCandidateLimit))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps domain errors onto HTTP status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, solver.ErrInvalidGuessShape):
		writeError(w, http.StatusBadRequest, "invalid_guess_shape")
	case errors.Is(err, solver.ErrSessionFinished):
		writeError(w, http.StatusConflict, "session_finished")
	default:
		log.Error().Err(err).Msg("session request failed")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
