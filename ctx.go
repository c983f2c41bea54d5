package shopping

import (
	"context"

	"github.com/goliatone/go-router"
)

// CurrentUserKey is the router locals key the authenticated identity lives
// under. The router context is the single canonical location; handlers never
// re-extract tokens themselves.
const CurrentUserKey = "current_user"

// AnonymousUserID is the placeholder id left behind after logout
const AnonymousUserID = "ANONYMOUS"

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// AnonymousIdentity returns the identity a logged out request carries
func AnonymousIdentity() Identity {
	return authIdentity{id: AnonymousUserID}
}

// IsAnonymous reports whether the identity is missing or the logout marker
func IsAnonymous(identity Identity) bool {
	return identity == nil || identity.ID() == "" || identity.ID() == AnonymousUserID
}

// WithCurrentUser sets the Identity in the given context
func WithCurrentUser(r context.Context, identity Identity) context.Context {
	return context.WithValue(r, identityCtxKey, identity)
}

// CurrentUserFromContext finds the identity from the standard context
func CurrentUserFromContext(ctx context.Context) (Identity, bool) {
	raw, ok := ctx.Value(identityCtxKey).(Identity)
	return raw, ok
}

// SetCurrentUser stores the identity in the router context locals
func SetCurrentUser(ctx router.Context, identity Identity) {
	ctx.Locals(CurrentUserKey, identity)
}

// CurrentUser extracts the identity from the router context locals
func CurrentUser(ctx router.Context) (Identity, bool) {
	raw := ctx.Locals(CurrentUserKey)
	if raw == nil {
		return nil, false
	}
	identity, ok := raw.(Identity)
	return identity, ok
}
