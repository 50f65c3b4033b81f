package http

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo's Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func formatValidationErrors(validationErrors validator.ValidationErrors) []string {
	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			details = append(details, fe.Namespace()+" failed on "+fe.Tag()+"="+fe.Param())
			continue
		}
		details = append(details, fe.Namespace()+" failed on "+fe.Tag())
	}
	return details
}
