package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showfolio/internal/session"
)

// SessionCookieName holds the access token for the server-rendered pages.
const SessionCookieName = "session_token"

// Decision is the outcome of one guard evaluation.
type Decision int

const (
	// DecisionLoading: session resolution is still pending; nothing may
	// render yet.
	DecisionLoading Decision = iota
	// DecisionAllow: the protected content may render.
	DecisionAllow
	// DecisionRedirectLogin: no identity present.
	DecisionRedirectLogin
	// DecisionRedirectDashboard: identity present but the role does not
	// match the requirement.
	DecisionRedirectDashboard
)

// Evaluate gates access to a protected view. requiredRole may be empty.
// The decision is never cached; every activation re-runs this against the
// latest snapshot.
func Evaluate(snap session.Snapshot, requiredRole string) Decision {
	switch snap.State {
	case session.StateLoading:
		return DecisionLoading
	case session.StateUnauthenticated:
		return DecisionRedirectLogin
	}
	if snap.Profile == nil {
		return DecisionRedirectLogin
	}
	if requiredRole != "" && snap.Profile.Role != requiredRole {
		return DecisionRedirectDashboard
	}
	return DecisionAllow
}

// PageGuard protects a server-rendered page: unauthenticated visitors are
// redirected to /login, role mismatches to /dashboard.
func PageGuard(store *session.Store, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookieName)
		snap := store.Resolve(c.Request.Context(), token)

		switch Evaluate(snap, requiredRole) {
		case DecisionAllow:
			c.Set("sessionProfile", snap.Profile)
			c.Next()
		case DecisionRedirectDashboard:
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
		default:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
	}
}
