package http

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"microloan-backend/internal/domain/loan"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// loan and borrower ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		return loan.Status(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

var tagMessages = map[string]func(p string) string{
	"required":   func(string) string { return "is required" },
	"hex32":      func(string) string { return "must be 32-char lowercase hex" },
	"dec2":       func(string) string { return "must have at most 2 decimal places" },
	"loanstatus": func(string) string { return "must be one of " + joinStatuses(loan.Statuses) },
	"email":      func(string) string { return "must be a valid email address" },
	"gt":         func(p string) string { return "must be greater than " + p },
	"gte":        func(p string) string { return "must be greater than or equal to " + p },
	"gtefield":   func(p string) string { return "must be greater than or equal to " + p },
	"lte":        func(p string) string { return "must be less than or equal to " + p },
	"max":        func(p string) string { return "must be at most " + p + " characters" },
}

// ToFieldErrors turns validator failures into per-field messages keyed by json name.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		msg := e.Tag() + " validation failed"
		if f, ok := tagMessages[e.Tag()]; ok {
			msg = f(e.Param())
		}
		out = append(out, FieldError{Field: e.Field(), Message: msg})
	}
	return out
}

func joinStatuses(list []loan.Status) string {
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
