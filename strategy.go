package shopping

import (
	"strings"

	"github.com/goliatone/go-router"
)

// JWTStrategyName is the only strategy the resolver ships with
const JWTStrategyName = "jwt"

// DefaultTokenLookup is the canonical ordered source list for bearer tokens.
// The two historical variants of this flow disagreed on where to look; we
// accept the union, headers first:
// Authorization (Bearer), X-Access-Token, query `token`, body `token`.
const DefaultTokenLookup = "header:Authorization,header:X-Access-Token,query:token,body:token"

// DefaultAuthScheme is the scheme stripped from the Authorization header
const DefaultAuthScheme = "Bearer"

// AuthenticationMetadata names the strategy protecting an operation. A nil
// metadata value means the operation requires no authentication.
type AuthenticationMetadata struct {
	Strategy string
}

// AuthenticationStrategy verifies a caller's identity from an inbound request
type AuthenticationStrategy interface {
	Authenticate(c router.Context) (Identity, error)
}

// TokenExtractor pulls a candidate token from one request location
type TokenExtractor func(c router.Context) string

// JWTStrategy authenticates requests by extracting and validating a signed
// token. Stateless; constructed per resolution.
type JWTStrategy struct {
	validator  TokenValidator
	extractors []TokenExtractor
	logger     Logger
}

// JWTStrategyOption configures a JWTStrategy
type JWTStrategyOption func(*JWTStrategy)

// WithTokenLookup overrides the canonical source list
func WithTokenLookup(lookup string, authSchemes ...string) JWTStrategyOption {
	return func(s *JWTStrategy) {
		s.extractors = GetExtractors(lookup, authSchemes...)
	}
}

// WithStrategyLogger overrides the strategy logger
func WithStrategyLogger(logger Logger) JWTStrategyOption {
	return func(s *JWTStrategy) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewJWTStrategy creates a strategy validating through the given validator
func NewJWTStrategy(validator TokenValidator, opts ...JWTStrategyOption) *JWTStrategy {
	s := &JWTStrategy{
		validator:  validator,
		extractors: GetExtractors(DefaultTokenLookup, DefaultAuthScheme),
		logger:     defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Authenticate extracts a candidate token and validates it. The result is
// the minimal identity; claims beyond id and email are stripped.
func (s *JWTStrategy) Authenticate(c router.Context) (Identity, error) {
	raw := ExtractRawToken(c, s.extractors)
	if raw == "" {
		return nil, ErrTokenNotFound
	}

	claims, err := s.validator.Validate(raw)
	if err != nil {
		s.logger.Debug("JWT strategy validation failed: %v", err)
		return nil, ErrAuthenticationFailed
	}

	return IdentityFromClaims(claims), nil
}

// ExtractRawToken runs the extractor chain in order, returning the first hit
func ExtractRawToken(c router.Context, extractors []TokenExtractor) string {
	for _, extractor := range extractors {
		if raw := extractor(c); raw != "" {
			return raw
		}
	}
	return ""
}

// GetExtractors builds an extractor chain from a token lookup expression,
// e.g. "header:Authorization,query:token,body:token,cookie:jwt".
func GetExtractors(tokenLookup string, authSchemes ...string) []TokenExtractor {
	extractors := make([]TokenExtractor, 0)

	authScheme := DefaultAuthScheme
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) != 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, tokenFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, tokenFromQuery(parts[1]))
		case "body":
			extractors = append(extractors, tokenFromBody(parts[1]))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(parts[1]))
		}
	}

	return extractors
}

// tokenFromHeader extracts from a request header. The auth scheme prefix is
// only expected (and stripped) on the Authorization header.
func tokenFromHeader(header, authScheme string) TokenExtractor {
	stripScheme := strings.EqualFold(header, router.HeaderAuthorization)
	return func(c router.Context) string {
		a := c.GetString(header, "")
		if a == "" {
			return ""
		}

		if !stripScheme || authScheme == "" {
			return strings.TrimSpace(a)
		}

		l := len(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:])
		}
		return ""
	}
}

func tokenFromQuery(param string) TokenExtractor {
	return func(c router.Context) string {
		return c.Query(param, "")
	}
}

type tokenBody struct {
	Token string `json:"token" form:"token"`
}

func tokenFromBody(field string) TokenExtractor {
	_ = field // body lookup is fixed to the `token` field
	return func(c router.Context) string {
		payload := new(tokenBody)
		if err := c.Bind(payload); err != nil {
			return ""
		}
		return strings.TrimSpace(payload.Token)
	}
}

func tokenFromCookie(name string) TokenExtractor {
	return func(c router.Context) string {
		return c.Cookies(name)
	}
}
