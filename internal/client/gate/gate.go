// Package gate decides whether protected screens may be entered.
package gate

import (
	"context"
	"errors"
)

// ErrSignInRequired is returned by Enter when no valid session is held.
var ErrSignInRequired = errors.New("please sign in first")

// Authenticator is satisfied by *session.Store.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Gate asks the session on every check; it caches nothing, so a fresh
// login is visible immediately and an expired one is refused immediately.
type Gate struct {
	auth Authenticator
}

func New(auth Authenticator) *Gate {
	return &Gate{auth: auth}
}

func (g *Gate) CanEnterProtected(ctx context.Context) bool {
	return g.auth.IsAuthenticated(ctx)
}

// Enter is CanEnterProtected in error form, for callers that propagate.
func (g *Gate) Enter(ctx context.Context) error {
	if !g.CanEnterProtected(ctx) {
		return ErrSignInRequired
	}
	return nil
}
