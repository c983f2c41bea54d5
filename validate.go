package shopping

import (
	"net/mail"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// ValidateEmail reports whether s is a syntactically valid email address
func ValidateEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// ValidatePasswordLength reports whether s meets the minimum length
func ValidatePasswordLength(s string) bool {
	return len(s) >= MinPasswordLength
}

// EmailRule is the ozzo rule shared by request payloads. We go through
// net/mail rather than is.Email so the predicate and the payload rules agree
// on what a valid address is.
func EmailRule() validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if s == "" {
			// Required handles the empty case with a better message
			return nil
		}
		if !ValidateEmail(s) {
			return errors.New("must be a valid email address", errors.CategoryValidation)
		}
		return nil
	})
}

// PasswordLengthRule keeps the original service's error wording
func PasswordLengthRule() validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if !ValidatePasswordLength(s) {
			return errors.New("must be minimum 8 characters", errors.CategoryValidation)
		}
		return nil
	})
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field -> message map for 422 response details.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		out["error"] = err.Error()
		return out
	}

	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}

	return out
}

// WrapValidationError lifts an ozzo error into a rich validation error whose
// metadata carries the per-field details.
func WrapValidationError(err error) *errors.Error {
	fields := FormatValidationErrorToMap(err)
	meta := make(map[string]any, len(fields))
	for k, v := range fields {
		meta[k] = v
	}
	return errors.Wrap(err, errors.CategoryValidation, "invalid request payload").
		WithMetadata(meta)
}
