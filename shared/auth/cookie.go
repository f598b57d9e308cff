package auth

import (
	"net/http"
	"time"
)

// DefaultCookieName is the cookie slot that carries the session token.
const DefaultCookieName = "token"

// CookieConfig describes how the session cookie is written.
type CookieConfig struct {
	Name   string
	Path   string
	Secure bool
	MaxAge time.Duration
}

// NewCookieConfig returns the session cookie policy. Secure is only set in
// production so the cookie still works over plain HTTP during development.
func NewCookieConfig(secure bool) CookieConfig {
	return CookieConfig{
		Name:   DefaultCookieName,
		Path:   "/",
		Secure: secure,
		MaxAge: SessionTTL,
	}
}

// Issue builds the cookie that carries token.
func (c CookieConfig) Issue(token string) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     c.Path,
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}

// Clear builds a cookie that overwrites the session slot and expires it
// immediately.
func (c CookieConfig) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     c.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}

// TokenFromRequest returns the session token carried by r, or "" if the
// cookie is absent.
func (c CookieConfig) TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
