package shopping

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig is the process configuration. The signing key has no default on
// purpose: it must come from the environment.
type AppConfig struct {
	HTTPAddr    string `env:"HTTP_ADDR" env-default:":3000"`
	DatabaseDSN string `env:"DATABASE_DSN" env-default:"file::memory:?cache=shared"`

	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	CartTTL       string `env:"CART_TTL" env-default:"0"`

	SigningKey  string `env:"AUTH_SIGNING_KEY" env-required:"true"`
	TokenTTL    int    `env:"AUTH_TOKEN_TTL" env-default:"300"`
	Issuer      string `env:"AUTH_ISSUER" env-default:""`
	Audience    string `env:"AUTH_AUDIENCE" env-default:""`
	TokenLookup string `env:"AUTH_TOKEN_LOOKUP" env-default:"header:Authorization,header:X-Access-Token,query:token,body:token"`
	AuthScheme  string `env:"AUTH_SCHEME" env-default:"Bearer"`

	RecommenderURL string `env:"RECOMMENDER_URL" env-default:"http://localhost:3001/users"`

	Debug bool `env:"DEBUG" env-default:"false"`
}

var _ Config = (*AppConfig)(nil)

// LoadConfig reads configuration from the environment
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AppConfig) GetTokenTTL() int {
	return c.TokenTTL
}

func (c *AppConfig) GetIssuer() string {
	return c.Issuer
}

// GetAudience splits the comma separated audience list
func (c *AppConfig) GetAudience() []string {
	if c.Audience == "" {
		return nil
	}

	parts := strings.Split(c.Audience, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func (c *AppConfig) GetTokenLookup() string {
	return c.TokenLookup
}

func (c *AppConfig) GetAuthScheme() string {
	return c.AuthScheme
}

// GetCartTTL parses the cart expiry, zero when unset or invalid
func (c *AppConfig) GetCartTTL() time.Duration {
	if c.CartTTL == "" || c.CartTTL == "0" {
		return 0
	}

	d, err := time.ParseDuration(c.CartTTL)
	if err != nil {
		return 0
	}

	return d
}
