package shopping_test

import (
	"testing"
	"time"

	shopping "github.com/goliatone/go-shopping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("fails without a signing key", func(t *testing.T) {
		_, err := shopping.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "from-the-environment")
		t.Setenv("AUTH_TOKEN_TTL", "60")
		t.Setenv("AUTH_AUDIENCE", "shop-web, shop-mobile")
		t.Setenv("CART_TTL", "30m")

		cfg, err := shopping.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "from-the-environment", cfg.GetSigningKey())
		assert.Equal(t, 60, cfg.GetTokenTTL())
		assert.Equal(t, []string{"shop-web", "shop-mobile"}, cfg.GetAudience())
		assert.Equal(t, 30*time.Minute, cfg.GetCartTTL())
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "key")

		cfg, err := shopping.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 300, cfg.GetTokenTTL())
		assert.Equal(t, shopping.DefaultTokenLookup, cfg.GetTokenLookup())
		assert.Equal(t, shopping.DefaultAuthScheme, cfg.GetAuthScheme())
		assert.Empty(t, cfg.GetAudience())
		assert.Zero(t, cfg.GetCartTTL())
	})
}
