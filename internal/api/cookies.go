package api

import (
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// CookieSettings carries the deployment-dependent cookie attributes.
type CookieSettings struct {
	Secure bool
}

// setSessionCookies sets the sessionid and csrftoken cookies for an
// established session. Both are HTTP-only with SameSite=Lax; the CSRF token
// reaches JavaScript through the response body of GET /users/csrf/, not
// through the cookie.
func setSessionCookies(w http.ResponseWriter, session *auth.Session, settings CookieSettings) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     shared.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   settings.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     shared.CSRFCookieName,
		Value:    session.CSRFToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   settings.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// setAnonymousCSRFCookie sets the double-submit CSRF cookie for clients
// without a session.
func setAnonymousCSRFCookie(w http.ResponseWriter, token string, settings CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     shared.CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   settings.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookies expires both auth cookies.
func clearSessionCookies(w http.ResponseWriter, settings CookieSettings) {
	for _, name := range []string{shared.SessionCookieName, shared.CSRFCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   settings.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
