package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rentbooks/rentbooks/internal/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct validation on a payload. Failures are resolved
// entirely locally: callers surface the error inline and send nothing.
func Validate(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}
