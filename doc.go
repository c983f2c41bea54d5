// Package shopping implements a small e-commerce user service: user
// registration and lookup backed by a Bun repository layer, a stateless JWT
// login/verify flow, and a named-strategy resolver for protected routes.
//
// Authentication flow:
//   - Login verifies credentials through an IdentityProvider and issues an
//     HS256 token carrying a minimal claim set {uid, email}. Tokens are not
//     persisted; validity is determined entirely by signature and expiry.
//   - Protected routes resolve an AuthenticationStrategy by name through the
//     StrategyResolver. The JWT strategy extracts a bearer token from one
//     canonical ordered source list and validates it through a TokenService.
//   - The resolved identity travels in the request context; logout replaces
//     it with the anonymous placeholder exactly once.
//
// The cmd/server binary wires everything with explicit constructors: cleanenv
// configuration, Bun over sqlite, goose migrations, a redis cart store, and a
// Fiber server behind the go-router adapter.
package shopping
