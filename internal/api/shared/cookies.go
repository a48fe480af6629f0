package shared

// Cookie and header names shared between handlers and middleware.
const (
	// SessionCookieName holds the opaque session token.
	SessionCookieName = "sessionid"

	// CSRFCookieName holds the CSRF token paired with the session (or, for
	// anonymous clients, with the double-submit cookie).
	CSRFCookieName = "csrftoken"

	// CSRFHeaderName is the request header clients echo the CSRF token in
	// on state-changing requests.
	CSRFHeaderName = "X-CSRF-Token"
)
