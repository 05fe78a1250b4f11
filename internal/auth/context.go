// internal/auth/context.go
//
// Request-scoped principal helpers.
//
// Usage
// -----
//     // Session middleware attaches the verified principal.
//     ctx = auth.WithPrincipal(ctx, p)
//
//     // Downstream code (ACL middleware, handlers) retrieves it.
//     p, ok := auth.PrincipalFrom(ctx)
//
// Notes
// -----
// • The principal carries the session id so logout can revoke exactly the
//   session that made the request.
// • Oxford commas, two spaces after periods.

package auth

import "context"

// principalKey is unexported to avoid context-key collisions.
type principalKey struct{}

// Principal is the authenticated caller.
type Principal struct {
	UserID    string
	Username  string
	Role      string
	SessionID string
}

// WithPrincipal returns a new context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal from ctx.  It returns false when no
// caller is authenticated.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
