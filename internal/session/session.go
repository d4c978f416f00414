// Package session provides the admin session abstraction: a small value
// object plus a Store that moves it between requests. The default store signs
// the state into an HttpOnly cookie so no server-side session table exists.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the signed admin session token.
const CookieName = "fc_admin_session"

// Session holds the per-client authentication state.
type Session struct {
	AdminLoggedIn bool
	AdminUsername string
}

// Authenticated reports whether the session belongs to a logged-in admin.
func (s Session) Authenticated() bool { return s.AdminLoggedIn }

// Store reads, writes and clears session state on HTTP exchanges.
type Store interface {
	Get(r *http.Request) Session
	Set(w http.ResponseWriter, sess Session) error
	Clear(w http.ResponseWriter)
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin,omitempty"`
}

// CookieStore は HS256 署名付きトークンを Cookie に載せるセッション実装。
// 改竄・期限切れトークンは単にゼロ値セッションとして扱う。
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieStore builds a signed-cookie session store.
func NewCookieStore(secret []byte, ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{secret: secret, ttl: ttl, secure: secure}
}

// Get parses the session cookie. Missing, malformed, tampered or expired
// tokens all yield the zero Session rather than an error.
func (c *CookieStore) Get(r *http.Request) Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return c.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return Session{}
	}
	if !claims.Admin || claims.Subject == "" {
		return Session{}
	}

	return Session{AdminLoggedIn: true, AdminUsername: claims.Subject}
}

// Set signs sess and writes it as an HttpOnly cookie.
func (c *CookieStore) Set(w http.ResponseWriter, sess Session) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.AdminUsername,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Admin: sess.AdminLoggedIn,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.ttl / time.Second),
	})
	return nil
}

// Clear expires the session cookie. Safe to call when no session exists.
func (c *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
