// Package auth stores the authenticated user in a session and gates
// navigation on it.
//
// The package is deliberately small: it defines how a user is kept in
// session storage and exposes gates a router can consult. Validating
// credentials is the application's business.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/lectern-dev/lectern/pkg/nav"
)

// Session provides the minimal session access auth helpers need.
type Session interface {
	Get(key string) any
	Set(key string, value any)
	Delete(key string)
}

// SessionKey is the session key for the authenticated user.
const SessionKey = "lectern_auth_user"

// sessionPresenceKey marks that a session was authenticated, separate
// from the user object so serializers that drop it can still tell.
const sessionPresenceKey = SessionKey + ":present"

// ErrUnauthorized is returned when authentication is required but absent.
var ErrUnauthorized = errors.New("auth: authentication required")

// ErrForbidden is returned when authentication is present but insufficient.
var ErrForbidden = errors.New("auth: insufficient permissions")

// Get retrieves the authenticated user from the session.
func Get[T any](session Session) (T, bool) {
	var zero T
	if session == nil {
		return zero, false
	}
	val := session.Get(SessionKey)
	if val == nil {
		return zero, false
	}
	user, ok := val.(T)
	if !ok {
		return zero, false
	}
	return user, true
}

// Require returns the authenticated user or ErrUnauthorized.
func Require[T any](session Session) (T, error) {
	user, ok := Get[T](session)
	if !ok {
		return user, ErrUnauthorized
	}
	return user, nil
}

// Set stores the authenticated user in the session. Call on login.
func Set[T any](session Session, user T) {
	if session == nil {
		return
	}
	session.Set(SessionKey, user)
	session.Set(sessionPresenceKey, true)
}

// Clear removes the authenticated user. Call on logout.
func Clear(session Session) {
	if session == nil {
		return
	}
	session.Delete(SessionKey)
	session.Delete(sessionPresenceKey)
}

// IsAuthenticated reports whether the session has an authenticated user.
func IsAuthenticated(session Session) bool {
	return session != nil && session.Get(SessionKey) != nil
}

// MemorySession is an in-memory Session, one per connection. Safe for
// concurrent use.
type MemorySession struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemorySession creates an empty session.
func NewMemorySession() *MemorySession {
	return &MemorySession{values: make(map[string]any)}
}

// Get implements Session.
func (s *MemorySession) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set implements Session.
func (s *MemorySession) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete implements Session.
func (s *MemorySession) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// SessionGate is a nav.AuthGate that passes gated routes only when the
// session is authenticated. Rejections are silent; the router reports
// them in the navigation result.
func SessionGate(session Session) nav.AuthGate {
	return nav.GateFunc(func(context.Context, string, *nav.RouteEntry) (bool, error) {
		return IsAuthenticated(session), nil
	})
}

// RoleGate passes gated routes only when the authenticated user
// satisfies check. An unauthenticated session is rejected outright.
func RoleGate[T any](session Session, check func(T) bool) nav.AuthGate {
	return nav.GateFunc(func(context.Context, string, *nav.RouteEntry) (bool, error) {
		user, ok := Get[T](session)
		if !ok {
			return false, nil
		}
		return check(user), nil
	})
}
