package shopping

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCreds         = "INVALID_CREDENTIALS"
	TextCodeInvalidEmail         = "INVALID_EMAIL"
	TextCodePasswordTooShort     = "PASSWORD_TOO_SHORT"
	TextCodeEmptyPassword        = "EMPTY_PASSWORD"
	TextCodeTokenExpired         = "TOKEN_EXPIRED"
	TextCodeTokenMalformed       = "TOKEN_MALFORMED"
	TextCodeTokenNotFound        = "TOKEN_NOT_FOUND"
	TextCodeAuthFailed           = "AUTHENTICATION_FAILED"
	TextCodeNoUserLoggedIn       = "NO_USER_LOGGED_IN"
	TextCodeStrategyNotAvailable = "STRATEGY_NOT_AVAILABLE"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound)

// ErrMismatchedHashAndPassword is returned when credentials do not verify.
// Callers must not distinguish between unknown identifier and bad password.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrInvalidEmail is the validation error for syntactically bad emails
var ErrInvalidEmail = errors.New("invalid email", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidEmail)

// ErrPasswordTooShort is the validation error for short passwords
var ErrPasswordTooShort = errors.New("password must be minimum 8 characters", errors.CategoryValidation).
	WithTextCode(TextCodePasswordTooShort)

// ErrTokenExpired is returned when a token is past its embedded expiry
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers forged, truncated, or otherwise undecodable tokens
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed)

// ErrTokenNotFound means no candidate token was present in any accepted source
var ErrTokenNotFound = errors.New("token not found", errors.CategoryAuth).
	WithTextCode(TextCodeTokenNotFound)

// ErrAuthenticationFailed is the generic strategy failure. The strategy path
// deliberately does not distinguish invalid from expired tokens.
var ErrAuthenticationFailed = errors.New("authentication failed", errors.CategoryAuth).
	WithTextCode(TextCodeAuthFailed)

// ErrNoUserLoggedIn is returned by logout when no identity is present
var ErrNoUserLoggedIn = errors.New("no user logged in", errors.CategoryAuth).
	WithTextCode(TextCodeNoUserLoggedIn)

// ErrCartNotFound is the miss result for the cart store
var ErrCartNotFound = errors.New("shopping cart not found", errors.CategoryNotFound)

// NewStrategyNotAvailable builds the rejection for unknown strategy names,
// naming the offending strategy.
func NewStrategyNotAvailable(name string) *errors.Error {
	return errors.New("the strategy "+name+" is not available", errors.CategoryBadInput).
		WithTextCode(TextCodeStrategyNotAvailable).
		WithMetadata(map[string]any{
			"strategy": name,
		})
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// StatusForError maps a rich error to an HTTP status. An explicit Code wins,
// otherwise the category decides.
func StatusForError(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	if richErr.Code != 0 {
		return richErr.Code
	}

	switch richErr.Category {
	case errors.CategoryValidation:
		return http.StatusUnprocessableEntity
	case errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
