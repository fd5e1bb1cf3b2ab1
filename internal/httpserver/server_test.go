package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wormle/internal/store"
	"github.com/robalobadob/wormle/internal/words"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testWords = words.List{"sunny", "shout", "sweet", "stove", "spark", "crane", "tears", "house"}

func newTestServer(t *testing.T, mutate ...func(*Options)) *Server {
	t.Helper()
	opts := Options{
		Words:      testWords,
		Length:     5,
		JWTSecret:  []byte("test-secret"),
		TokenTTL:   time.Hour,
		SessionTTL: time.Hour,
	}
	for _, f := range mutate {
		f(&opts)
	}
	return New(store.NewMemoryStore(), opts)
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func create(t *testing.T, s *Server) createRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[createRes](t, rec)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestDiagnostics(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "POST /sessions")

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string]int](t, rec)
	assert.Equal(t, len(testWords), stats["words"])
	assert.Equal(t, 5, stats["length"])

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))

	rec = do(t, s, http.MethodOptions, "/sessions", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateSession(t *testing.T) {
	s := newTestServer(t)

	res := create(t, s)
	assert.NotEmpty(t, res.SessionID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 5, res.Length)
	assert.Equal(t, len(testWords), res.Remaining)
	assert.Equal(t, "continuing", string(res.Status))
	assert.Contains(t, testWords, res.Suggestion)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	rec := do(t, s, http.MethodPost, "/sessions", "", `{"shuffle":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", errorCode(t, rec))
}

func TestGuessFlow(t *testing.T) {
	s := newTestServer(t)
	res := create(t, s)
	base := "/sessions/" + res.SessionID

	rec := do(t, s, http.MethodPost, base+"/guess", res.Token, map[string]string{"word": "SPARK", "feedback": "gbbbb"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[sessionView](t, rec)
	assert.ElementsMatch(t, []string{"sunny", "shout", "sweet", "stove"}, view.Candidates)
	assert.Equal(t, 4, view.Remaining)
	assert.Equal(t, 1, view.Round)
	assert.Equal(t, []guessView{{Word: "spark", Feedback: "gbbbb"}}, view.History)
	assert.Contains(t, view.Candidates, view.Suggestion)

	// feedback also accepted as an array of mark names
	rec = do(t, s, http.MethodPost, base+"/guess", res.Token, map[string]any{
		"word":     "stove",
		"feedback": []string{"correct", "correct", "correct", "correct", "correct"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = decode[sessionView](t, rec)
	assert.Equal(t, "solved", string(view.Status))
	assert.Equal(t, []string{"stove"}, view.Candidates)
	assert.Equal(t, "stove", view.Suggestion)

	rec = do(t, s, http.MethodPost, base+"/guess", res.Token, map[string]string{"word": "crane", "feedback": "bbbbb"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "session_finished", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, base+"/reset", res.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[sessionView](t, rec)
	assert.Equal(t, "continuing", string(view.Status))
	assert.Equal(t, len(testWords), view.Remaining)
	assert.Empty(t, view.History)
}

func TestGuessErrors(t *testing.T) {
	s := newTestServer(t)
	res := create(t, s)
	path := "/sessions/" + res.SessionID + "/guess"

	tests := []struct {
		name string
		body any
		code string
	}{
		{"short feedback", map[string]string{"word": "crane", "feedback": "gb"}, "invalid_guess_shape"},
		{"short word", map[string]string{"word": "cran", "feedback": "gbbbb"}, "invalid_guess_shape"},
		{"digits", map[string]string{"word": "cr4ne", "feedback": "gbbbb"}, "invalid_guess_shape"},
		{"unknown mark", map[string]string{"word": "crane", "feedback": "gbbbz"}, "invalid_guess_shape"},
		{"broken json", `{"word":`, "bad_json"},
		{"empty body", nil, "bad_json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, path, res.Token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}

	// none of the rejected guesses touched the session
	rec := do(t, s, http.MethodGet, "/sessions/"+res.SessionID, res.Token, nil)
	view := decode[sessionView](t, rec)
	assert.Equal(t, len(testWords), view.Remaining)
	assert.Empty(t, view.History)
}

func TestExhaustion(t *testing.T) {
	s := newTestServer(t)
	res := create(t, s)

	rec := do(t, s, http.MethodPost, "/sessions/"+res.SessionID+"/guess", res.Token,
		map[string]string{"word": "quick", "feedback": "ggggg"})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[sessionView](t, rec)
	assert.Equal(t, "solved", string(view.Status), "all-correct wins even when the word is unknown")

	res = create(t, s)
	rec = do(t, s, http.MethodPost, "/sessions/"+res.SessionID+"/guess", res.Token,
		map[string]string{"word": "zzzzz", "feedback": "yyyyy"})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[sessionView](t, rec)
	assert.Equal(t, "exhausted", string(view.Status))
	assert.Empty(t, view.Candidates)
	assert.Equal(t, "", view.Suggestion)
}

func TestSessionAuth(t *testing.T) {
	s := newTestServer(t)
	a := create(t, s)
	b := create(t, s)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
		{"other session", b.Token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/sessions/"+a.SessionID, tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized", errorCode(t, rec))
		})
	}

	other := newTestServer(t, func(o *Options) { o.JWTSecret = []byte("another-secret") })
	forged, _, err := other.tokens.issue(a.SessionID)
	require.NoError(t, err)
	rec := do(t, s, http.MethodGet, "/sessions/"+a.SessionID, forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := s.tokens.issue(a.SessionID)
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/sessions/"+a.SessionID, expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownSession(t *testing.T) {
	s := newTestServer(t)
	tok, _, err := s.tokens.issue("ghost")
	require.NoError(t, err)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/sessions/ghost"},
		{http.MethodPost, "/sessions/ghost/reset"},
		{http.MethodDelete, "/sessions/ghost"},
	} {
		rec := do(t, s, req.method, req.path, tok, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, req.path)
		assert.Equal(t, "not_found", errorCode(t, rec))
	}

	rec := do(t, s, http.MethodPost, "/sessions/ghost/guess", tok, map[string]string{"word": "crane", "feedback": "bbbbb"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSessionLimit(t *testing.T) {
	s := newTestServer(t)
	res := create(t, s)
	path := "/sessions/" + res.SessionID

	rec := do(t, s, http.MethodGet, path+"?limit=2", res.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[sessionView](t, rec)
	assert.Len(t, view.Candidates, 2)
	assert.Equal(t, len(testWords), view.Remaining)

	rec = do(t, s, http.MethodGet, path+"?limit=0", res.Token, nil)
	view = decode[sessionView](t, rec)
	assert.Len(t, view.Candidates, len(testWords))

	rec = do(t, s, http.MethodGet, path+"?limit=-1", res.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_limit", errorCode(t, rec))
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t)
	res := create(t, s)
	path := "/sessions/" + res.SessionID

	rec := do(t, s, http.MethodDelete, path, res.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, path, res.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdleSessionsSweptOnCreate(t *testing.T) {
	s := newTestServer(t, func(o *Options) { o.SessionTTL = time.Millisecond })
	old := create(t, s)
	time.Sleep(5 * time.Millisecond)
	create(t, s)

	assert.Equal(t, 1, s.store.Len())
	rec := do(t, s, http.MethodGet, "/sessions/"+old.SessionID, old.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(o *Options) {
		o.RateLimitRPS = 0.001
		o.RateBurst = 2
	})

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "", nil).Code)
	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too_many_requests", errorCode(t, rec))

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	other := httptest.NewRecorder()
	s.Router().ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestStartStopsOnCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, "127.0.0.1:0") }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
