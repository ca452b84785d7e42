package utils

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the session JWT.
const SessionCookieName = "token"

// SetSessionCookie sets the http-only session cookie. Cross-site delivery
// (SameSite=None) needs Secure, so insecure dev setups fall back to Lax.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

// ClearSessionCookie expires the session cookie with the same attributes it was set with.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

func sameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
