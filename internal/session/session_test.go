package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieFromRecorder(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatalf("session cookie %q not set", CookieName)
	return nil
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore([]byte("test-secret"), time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, Session{AdminLoggedIn: true, AdminUsername: "admin"}))

	cookie := cookieFromRecorder(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	req.AddCookie(cookie)

	sess := store.Get(req)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "admin", sess.AdminUsername)
}

func TestCookieStore_MissingCookie(t *testing.T) {
	store := NewCookieStore([]byte("test-secret"), time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, store.Get(req).Authenticated())
}

func TestCookieStore_TamperedToken(t *testing.T) {
	store := NewCookieStore([]byte("test-secret"), time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, Session{AdminLoggedIn: true, AdminUsername: "admin"}))
	cookie := cookieFromRecorder(t, rec)

	// 署名部分を壊す
	parts := strings.Split(cookie.Value, ".")
	require.Len(t, parts, 3)
	parts[2] = "x" + parts[2]
	cookie.Value = strings.Join(parts, ".")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.False(t, store.Get(req).Authenticated())
}

func TestCookieStore_WrongSecret(t *testing.T) {
	issuer := NewCookieStore([]byte("secret-a"), time.Hour, false)
	verifier := NewCookieStore([]byte("secret-b"), time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.Set(rec, Session{AdminLoggedIn: true, AdminUsername: "admin"}))
	cookie := cookieFromRecorder(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.False(t, verifier.Get(req).Authenticated())
}

func TestCookieStore_ExpiredToken(t *testing.T) {
	store := NewCookieStore([]byte("test-secret"), -time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, Session{AdminLoggedIn: true, AdminUsername: "admin"}))
	cookie := cookieFromRecorder(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.False(t, store.Get(req).Authenticated())
}

func TestCookieStore_Clear(t *testing.T) {
	store := NewCookieStore([]byte("test-secret"), time.Hour, false)

	rec := httptest.NewRecorder()
	store.Clear(rec)

	cookie := cookieFromRecorder(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	// 再度呼んでも安全（冪等）
	store.Clear(httptest.NewRecorder())
}
