package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"hola/internal/models"
)

// Validation limits for the editor's details form.
const (
	maxNameLen    = 200
	maxMessageLen = 5_000
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateDetails checks the editor details form and returns the first
// error found.
func validateDetails(recipient, sender, message string) string {
	if utf8.RuneCountInString(recipient) > maxNameLen {
		return "Recipient name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(sender) > maxNameLen {
		return "Sender name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}

// validateGreeting checks a greeting before it is stored and returns the
// first error found, phrased for an API client.
func validateGreeting(v *validator.Validate, g *models.Greeting) string {
	err := v.Struct(g)
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid greeting."
	}

	fe := fieldErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Greeting.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %q is required.", field)
	case "max":
		return fmt.Sprintf("Field %q is too long (max %s).", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("Field %q must be one of: %s.", field, fe.Param())
	}
	return fmt.Sprintf("Field %q is invalid.", field)
}
