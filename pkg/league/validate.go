package league

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/xerrors"
)

var validate = validator.New()

// Validate checks the validate tags of payload. Failures wrap ErrInvalidInput.
func Validate(ctx context.Context, payload any) error {
	if err := validate.StructCtx(ctx, payload); err != nil {
		return xerrors.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	return nil
}

// ValidateEmail reports whether email is a well formed address.
func ValidateEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
