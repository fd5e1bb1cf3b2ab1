// internal/httpserver/token.go
//
// Session tokens. POST /sessions returns an HS256 JWT whose "sid" claim names
// the session it was issued for; every /sessions/{id} route requires it as
// "Authorization: Bearer <token>".

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var errNoToken = errors.New("missing bearer token")

const defaultSecret = "dev_secret_change_me"

// sessionClaims binds a token to one session.
type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and verifies session tokens.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenIssuer(secret []byte, ttl time.Duration) *tokenIssuer {
	if len(secret) == 0 {
		secret = []byte(defaultSecret)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &tokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

// issue signs a token for sid and returns it with its expiry.
func (t *tokenIssuer) issue(sid string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// verify checks signature and expiry and returns the session id.
func (t *tokenIssuer) verify(raw string) (string, error) {
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !tok.Valid || claims.SID == "" {
		return "", fmt.Errorf("token has no session id")
	}
	return claims.SID, nil
}

// bearer extracts the token from the Authorization header.
func bearer(r *http.Request) (string, error) {
	a := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return "", errNoToken
	}
	tok := strings.TrimSpace(a[7:])
	if tok == "" {
		return "", errNoToken
	}
	return tok, nil
}

// requireSessionToken rejects requests whose token is missing, invalid, or
// issued for a different session than the {id} URL parameter.
func (s *Server) requireSessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearer(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sid, err := s.tokens.verify(raw)
		if err != nil || sid != chi.URLParam(r, "id") {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
