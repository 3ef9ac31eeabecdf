package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/approval"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reLoanCode = regexp.MustCompile(`^LN-\d{4}-\d{4}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// loan code = LN-YYMM-NNNN
	_ = v.RegisterValidation("loancode", func(fl validator.FieldLevel) bool {
		return reLoanCode.MatchString(fl.Field().String())
	})
	// one of the known approval roles
	_ = v.RegisterValidation("approvalrole", func(fl validator.FieldLevel) bool {
		return approval.Role(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "loancode":
			out = append(out, FieldError{Field: field, Message: "must look like LN-YYMM-NNNN"})
		case "approvalrole":
			out = append(out, FieldError{Field: field, Message: "is not a known approval role"})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must be a date formatted " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
