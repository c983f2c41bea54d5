package shopping_test

import (
	"testing"

	shopping "github.com/goliatone/go-shopping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validTokenFor(t *testing.T, svc shopping.TokenService, id, email string) string {
	t.Helper()
	token, err := svc.Generate(stubIdentity{id: id, email: email})
	require.NoError(t, err)
	return token
}

func TestJWTStrategyAuthenticate(t *testing.T) {
	svc := newTestTokenService(300)
	strategy := shopping.NewJWTStrategy(svc)

	token := validTokenFor(t, svc, "user-1", "jane@example.com")

	t.Run("token in Authorization header", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Bearer " + token)

		identity, err := strategy.Authenticate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID())
		assert.Equal(t, "jane@example.com", identity.Email())
	})

	t.Run("token in X-Access-Token header, no scheme", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("")
		ctx.On("GetString", "X-Access-Token", "").Return(token)

		identity, err := strategy.Authenticate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID())
	})

	t.Run("token in query param", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("")
		ctx.On("GetString", "X-Access-Token", "").Return("")
		ctx.On("Query", "token", "").Return(token)

		identity, err := strategy.Authenticate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID())
	})

	t.Run("token in request body", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("")
		ctx.On("GetString", "X-Access-Token", "").Return("")
		ctx.On("Query", "token", "").Return("")
		ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
			bindPayload(args.Get(0), map[string]string{"token": token})
		}).Return(nil)

		identity, err := strategy.Authenticate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID())
	})

	t.Run("header wins over query", func(t *testing.T) {
		otherToken := validTokenFor(t, svc, "user-2", "other@example.com")

		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Bearer " + token)
		ctx.On("Query", "token", "").Return(otherToken).Maybe()

		identity, err := strategy.Authenticate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID())
	})

	t.Run("no token anywhere", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("")
		ctx.On("GetString", "X-Access-Token", "").Return("")
		ctx.On("Query", "token", "").Return("")
		ctx.On("Bind", mock.Anything).Return(assert.AnError)

		_, err := strategy.Authenticate(ctx)
		assert.ErrorIs(t, err, shopping.ErrTokenNotFound)
	})

	t.Run("wrong auth scheme is not a token", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Basic dXNlcjpwYXNz")
		ctx.On("GetString", "X-Access-Token", "").Return("")
		ctx.On("Query", "token", "").Return("")
		ctx.On("Bind", mock.Anything).Return(assert.AnError)

		_, err := strategy.Authenticate(ctx)
		assert.ErrorIs(t, err, shopping.ErrTokenNotFound)
	})

	t.Run("invalid token fails authentication", func(t *testing.T) {
		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Bearer not.a.valid.token")

		_, err := strategy.Authenticate(ctx)
		assert.ErrorIs(t, err, shopping.ErrAuthenticationFailed)
	})

	t.Run("expired token fails authentication", func(t *testing.T) {
		expiring := shopping.NewTokenService(testSigningKey, 1, "", nil, nil)
		expired := validTokenFor(t, expiring, "user-1", "")

		// force validation through a validator that treats it as expired
		failing := shopping.TokenValidatorFunc(func(string) (shopping.AuthClaims, error) {
			return nil, shopping.ErrTokenExpired
		})
		strategy := shopping.NewJWTStrategy(failing)

		ctx := NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("Bearer " + expired)

		_, err := strategy.Authenticate(ctx)
		assert.ErrorIs(t, err, shopping.ErrAuthenticationFailed)
	})
}

func TestGetExtractors(t *testing.T) {
	t.Run("default lookup yields four extractors", func(t *testing.T) {
		extractors := shopping.GetExtractors(shopping.DefaultTokenLookup, shopping.DefaultAuthScheme)
		assert.Len(t, extractors, 4)
	})

	t.Run("unknown sources are skipped", func(t *testing.T) {
		extractors := shopping.GetExtractors("header:Authorization,carrier-pigeon:token")
		assert.Len(t, extractors, 1)
	})

	t.Run("cookie source is supported", func(t *testing.T) {
		extractors := shopping.GetExtractors("cookie:jwt")
		require.Len(t, extractors, 1)

		ctx := NewMockContext()
		ctx.On("Cookies", "jwt").Return("cookie-token")
		assert.Equal(t, "cookie-token", shopping.ExtractRawToken(ctx, extractors))
	})
}
