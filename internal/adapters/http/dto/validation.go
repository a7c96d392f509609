package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrValidation marks a struct-tag or custom-rule failure.
	ErrValidation = errors.New("validation failed")

	// ErrBinding marks a JSON decode failure before validation ran.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the process-wide validator, configured on first use to
// report JSON field names and to know this package's custom rules.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonFieldName)

		_ = validate.RegisterValidation("uuid", isUUID)
		_ = validate.RegisterValidation("notempty", isNotBlank)
	})

	return validate
}

// jsonFieldName surfaces the wire name in errors instead of the Go field.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

// Validate checks v's struct tags; failures are wrapped in ErrValidation.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON request body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors flattens a validator error into wire-name → message
// pairs for the error envelope's details section.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			fieldErrors[fe.Field()] = messageFor(fe)
		}
	}

	return fieldErrors
}

// messages covers the rules this API actually uses; {param} is substituted
// with the rule parameter.
var messages = map[string]string{
	"required": "this field is required",
	"notempty": "must not be empty",
	"uuid":     "must be a valid UUID",
	"url":      "must be a valid URL",
	"oneof":    "must be one of: {param}",
	"gte":      "must be greater than or equal to {param}",
	"lte":      "must be less than or equal to {param}",
}

func messageFor(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()

	if tag == "min" || tag == "max" {
		suffix := ""
		if fe.Type().Kind() == reflect.String {
			suffix = " characters"
		}
		if tag == "min" {
			return "must be at least " + param + suffix
		}
		return "must be at most " + param + suffix
	}

	if msg, ok := messages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

// isUUID accepts any RFC 4122 form; combine with required to reject "".
func isUUID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	_, err := uuid.Parse(value)

	return err == nil
}

// isNotBlank rejects strings that are empty after trimming whitespace.
func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
