// Package guard implements route-entry policies. A guard is evaluated
// synchronously every time a view is entered, and again whenever the session
// changes; it is never a one-time cached check.
package guard

// SessionChecker is the slice of the session store a guard consults.
type SessionChecker interface {
	Authenticated() bool
}

// Target names the places a guard can redirect to.
type Target int

const (
	// TargetNone means render the guarded content.
	TargetNone Target = iota
	// TargetSignIn is the sign-in entry point.
	TargetSignIn
	// TargetHome is the authenticated landing page.
	TargetHome
)

// Decision is the outcome of evaluating a policy.
type Decision struct {
	Allowed    bool
	RedirectTo Target
}

// Policy decides whether a route may render for the current session.
type Policy interface {
	Evaluate(s SessionChecker) Decision
}

// RequireAuthenticated redirects anonymous clients to sign-in.
type RequireAuthenticated struct{}

func (RequireAuthenticated) Evaluate(s SessionChecker) Decision {
	if !s.Authenticated() {
		return Decision{RedirectTo: TargetSignIn}
	}
	return Decision{Allowed: true}
}

// RequireAnonymous redirects authenticated clients to the landing page, so
// signed-in users never see the sign-in and sign-up views.
type RequireAnonymous struct{}

func (RequireAnonymous) Evaluate(s SessionChecker) Decision {
	if s.Authenticated() {
		return Decision{RedirectTo: TargetHome}
	}
	return Decision{Allowed: true}
}
