package nav

import "time"

// Status discriminates how a navigation concluded. Rejections and faults
// are deliberate outcomes, not errors: callers wanting user-visible
// feedback react to the status instead of the router guessing at UI.
type Status uint8

const (
	// StatusOK: the navigation committed; history, current route,
	// active links, and scroll were all updated.
	StatusOK Status = iota

	// StatusNoMatch: no registered route accepted the path. Not an
	// error — the platform navigates natively (full load) instead.
	StatusNoMatch

	// StatusRejectedByMiddleware: a middleware returned false. The
	// navigation aborted with no visible change.
	StatusRejectedByMiddleware

	// StatusRejectedByAuth: the authorization gate returned false. Same
	// silent abort as a middleware rejection.
	StatusRejectedByAuth

	// StatusFault: the handler or the surrounding procedure failed. The
	// platform degraded to a full navigation (push) or reload (pop).
	StatusFault

	// StatusSuperseded: another navigation started before this one
	// committed, so its history and scroll effects were discarded.
	StatusSuperseded
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoMatch:
		return "no_match"
	case StatusRejectedByMiddleware:
		return "rejected_middleware"
	case StatusRejectedByAuth:
		return "rejected_auth"
	case StatusFault:
		return "fault"
	case StatusSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Result reports the outcome of one navigation.
type Result struct {
	// Status is the discriminated outcome.
	Status Status

	// Location is the full location the navigation targeted, including
	// any query string.
	Location string

	// Err is the underlying failure for StatusFault, nil otherwise.
	Err error
}

// OK reports whether the navigation committed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Kind identifies the flavor of a navigation for observers.
type Kind uint8

const (
	// KindPush is a link-driven or programmatic forward navigation.
	KindPush Kind = iota

	// KindPop is a back/forward traversal of the history stack.
	KindPop
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindPop {
		return "pop"
	}
	return "push"
}

// Observer receives navigation lifecycle notifications. Observers sit
// outside the gate chain: they cannot influence the outcome, only record
// it. Metrics and tracing attach here.
type Observer interface {
	// NavigationStarted fires after a route matched, before gating.
	NavigationStarted(kind Kind, location string)

	// NavigationFinished fires once per started navigation with the
	// final status, the fault error if any, and the elapsed time.
	NavigationFinished(kind Kind, location string, status Status, err error, elapsed time.Duration)
}
