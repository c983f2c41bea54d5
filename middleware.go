package shopping

import (
	"github.com/goliatone/go-router"
)

// ProtectedRoute guards a route with the strategy named by meta. A nil or
// empty metadata keeps the route public. On success the identity is stored in
// the router locals and mirrored into the request context so downstream code
// reads it from one place.
func ProtectedRoute(resolver *StrategyResolver, meta *AuthenticationMetadata, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = DefaultAuthErrorHandler
	}

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			strategy, err := resolver.Resolve(meta)
			if err != nil {
				return errorHandler(ctx, err)
			}

			if strategy == nil {
				return hf(ctx)
			}

			identity, err := strategy.Authenticate(ctx)
			if err != nil {
				return errorHandler(ctx, err)
			}

			SetCurrentUser(ctx, identity)
			ctx.SetContext(WithCurrentUser(ctx.Context(), identity))

			return hf(ctx)
		}
	}
}

// OptionalRoute tries to authenticate but lets the request through either
// way. Used by logout, which needs the identity when present but must not
// reject anonymous callers outright.
func OptionalRoute(resolver *StrategyResolver, meta *AuthenticationMetadata) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			strategy, err := resolver.Resolve(meta)
			if err != nil || strategy == nil {
				return hf(ctx)
			}

			if identity, err := strategy.Authenticate(ctx); err == nil {
				SetCurrentUser(ctx, identity)
				ctx.SetContext(WithCurrentUser(ctx.Context(), identity))
			}

			return hf(ctx)
		}
	}
}

// DefaultAuthErrorHandler renders authentication failures as rich errors
func DefaultAuthErrorHandler(ctx router.Context, err error) error {
	richErr := ErrAuthenticationFailed
	if IsTokenExpiredError(err) {
		richErr = ErrTokenExpired
	} else if IsMalformedError(err) {
		richErr = ErrTokenMalformed
	}

	return ctx.JSON(StatusForError(richErr), map[string]any{
		"error": richErr.Message,
	})
}
