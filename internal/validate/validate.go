package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// noAllRepeatingChars rejects strings like "aaaaaaaaaa" that pass the
	// length rules but carry no information.
	err := validate.RegisterValidation(
		"noAllRepeatingChars",
		noAllRepeatingChars,
	)
	if err != nil {
		panic(fmt.Sprintf("failed to register validation: %v", err))
	}
}

// FieldErrors is the per-field failure list handed back to clients inside
// the response envelope.
type FieldErrors []string

func (fe FieldErrors) Error() string {
	return strings.Join(fe, "; ")
}

// StructFields validates v against its struct tags and returns a
// FieldErrors describing every failed rule, or nil when valid.
func StructFields(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrs := make(FieldErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(
			fieldErrs,
			fmt.Sprintf(
				"'%s' failed on the '%s' rule",
				fe.Field(),
				fe.Tag(),
			),
		)
	}

	return fieldErrs
}

func noAllRepeatingChars(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 2 {
		return true
	}

	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return true
		}
	}

	return false
}
