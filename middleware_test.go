package shopping_test

import (
	"net/http"
	"testing"

	shopping "github.com/goliatone/go-shopping"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProtectedRoute(t *testing.T) {
	svc := newTestTokenService(300)
	resolver := shopping.NewStrategyResolver(svc)
	jwtMeta := &shopping.AuthenticationMetadata{Strategy: shopping.JWTStrategyName}

	token := validTokenFor(t, svc, "user-1", "jane@example.com")

	t.Run("valid token reaches the handler with an identity", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Bearer " + token)

		handlerRan := false
		handler := shopping.ProtectedRoute(resolver, jwtMeta, nil)(func(c router.Context) error {
			handlerRan = true

			identity, ok := shopping.CurrentUser(c)
			require.True(t, ok)
			assert.Equal(t, "user-1", identity.ID())

			// identity is mirrored into the request context
			fromStd, ok := shopping.CurrentUserFromContext(c.Context())
			require.True(t, ok)
			assert.Equal(t, "user-1", fromStd.ID())

			return nil
		})

		require.NoError(t, handler(ctx))
		assert.True(t, handlerRan)
	})

	t.Run("missing token is rejected before the handler", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("")
		ctx.On("GetString", "X-Access-Token", "").Return("")
		ctx.On("Query", "token", "").Return("")
		ctx.On("Bind", mock.Anything).Return(assert.AnError)

		handlerRan := false
		handler := shopping.ProtectedRoute(resolver, jwtMeta, nil)(func(c router.Context) error {
			handlerRan = true
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.False(t, handlerRan)
		assert.Equal(t, http.StatusUnauthorized, ctx.StatusCode)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Bearer not.a.token")

		handler := shopping.ProtectedRoute(resolver, jwtMeta, nil)(func(c router.Context) error {
			t.Fatal("handler should not run")
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.Equal(t, http.StatusUnauthorized, ctx.StatusCode)
	})

	t.Run("nil metadata leaves the route public", func(t *testing.T) {
		ctx := NewMockContext()

		handlerRan := false
		handler := shopping.ProtectedRoute(resolver, nil, nil)(func(c router.Context) error {
			handlerRan = true
			_, ok := shopping.CurrentUser(c)
			assert.False(t, ok)
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.True(t, handlerRan)
	})

	t.Run("unknown strategy is rejected naming the strategy", func(t *testing.T) {
		ctx := NewMockContext()

		handler := shopping.ProtectedRoute(resolver, &shopping.AuthenticationMetadata{
			Strategy: "oauth",
		}, func(c router.Context, err error) error {
			assert.Contains(t, err.Error(), "oauth")
			return c.JSON(shopping.StatusForError(err), map[string]any{"error": err.Error()})
		})(func(c router.Context) error {
			t.Fatal("handler should not run")
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.Equal(t, http.StatusBadRequest, ctx.StatusCode)
	})
}

func TestOptionalRoute(t *testing.T) {
	svc := newTestTokenService(300)
	resolver := shopping.NewStrategyResolver(svc)
	jwtMeta := &shopping.AuthenticationMetadata{Strategy: shopping.JWTStrategyName}

	t.Run("valid token attaches the identity", func(t *testing.T) {
		token := validTokenFor(t, svc, "user-1", "jane@example.com")

		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Bearer " + token)

		handler := shopping.OptionalRoute(resolver, jwtMeta)(func(c router.Context) error {
			identity, ok := shopping.CurrentUser(c)
			require.True(t, ok)
			assert.Equal(t, "user-1", identity.ID())
			return nil
		})

		require.NoError(t, handler(ctx))
	})

	t.Run("missing token still reaches the handler", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("")
		ctx.On("GetString", "X-Access-Token", "").Return("")
		ctx.On("Query", "token", "").Return("")
		ctx.On("Bind", mock.Anything).Return(assert.AnError)

		handlerRan := false
		handler := shopping.OptionalRoute(resolver, jwtMeta)(func(c router.Context) error {
			handlerRan = true
			_, ok := shopping.CurrentUser(c)
			assert.False(t, ok)
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.True(t, handlerRan)
	})
}
