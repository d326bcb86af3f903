// Package auth implements the three-party authorization lattice (§4.1):
// AuthUser, AuthAP, AuthUserAP and AuthAdmin, each reachable only through its
// own credential path, plus the verification protocol that every
// write-bearing handler must pass its resource through before mutating it.
package auth

import (
	"context"

	"github.com/sport-log/sport-log-server/internal/idtype"
)

// Kind identifies which of the four authentication contexts a request
// authenticated as.
type Kind int

const (
	// KindUser is username+password (AuthUser).
	KindUser Kind = iota
	// KindActionProvider is provider-name+password (AuthAP).
	KindActionProvider
	// KindUserAP is provider-name+password plus an `id` header naming the
	// user being acted on behalf of (AuthUserAP). Requires a live linking
	// ActionEvent (§4.1).
	KindUserAP
	// KindAdmin is the fixed "admin" username + configured admin password.
	KindAdmin
)

// Principal is the authenticated identity attached to a request context
// after the Basic-auth middleware runs.
type Principal struct {
	Kind             Kind
	UserID           idtype.UserID           // set for KindUser, KindUserAP
	ActionProviderID idtype.ActionProviderID // set for KindActionProvider, KindUserAP
}

// IsUser reports whether the principal may act as this user directly
// (KindUser only — KindUserAP acts on behalf of a user but is a distinct
// credential path with its own write restrictions, see verify.go).
func (p Principal) IsUser(id idtype.UserID) bool {
	return p.Kind == KindUser && p.UserID == id
}

type principalCtxKey struct{}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// FromContext retrieves the Principal attached by the auth middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
