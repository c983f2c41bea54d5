package shopping

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Auther orchestrates credential verification and token issuance
type Auther struct {
	provider IdentityProvider
	tokens   TokenService
	logger   Logger
}

// NewAuthenticator creates an Auther from an identity provider and config
func NewAuthenticator(provider IdentityProvider, cfg Config) *Auther {
	logger := Logger(defLogger{})

	tokens := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenTTL(),
		cfg.GetIssuer(),
		jwt.ClaimStrings(cfg.GetAudience()),
		logger,
	)

	return &Auther{
		provider: provider,
		tokens:   tokens,
		logger:   logger,
	}
}

// WithLogger sets the logger
func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// TokenService exposes the underlying token service, e.g. for building the
// strategy resolver against the same signing key.
func (a *Auther) TokenService() TokenService {
	return a.tokens
}

// Login verifies the given credentials and returns a signed token for the
// matching user.
func (a *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := a.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		a.logger.Debug("login failed for identifier %s: %v", identifier, err)
		return "", err
	}

	return a.tokens.Generate(identity)
}

// IdentityFromToken validates a raw token and returns the identity it carries
func (a *Auther) IdentityFromToken(token string) (Identity, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	return IdentityFromClaims(claims), nil
}
