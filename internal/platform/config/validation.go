package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the loaded configuration. The service must not start on
// an invalid config, so the error lists every violation at once.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return explainValidation(err)
	}

	return c.validateCredentials()
}

// validateCredentials enforces what struct tags cannot: each accepted
// credential names exactly one credential form.
func (c *Config) validateCredentials() error {
	if !c.Auth.Enabled {
		return nil
	}

	for i, cred := range c.Auth.Credentials {
		forms := 0

		if cred.APIKey != "" {
			forms++
		}

		if cred.Username != "" || cred.Password != "" {
			forms++
		}

		if cred.Token != "" {
			forms++
		}

		if forms != 1 {
			return fmt.Errorf(
				"auth.credentials[%d] (%s): exactly one of api_key, username/password or token must be set",
				i, cred.Subject)
		}
	}

	return nil
}

// explainValidation rewrites validator errors in config-key terms so the
// operator sees "server.port must be at least 1" rather than struct paths.
func explainValidation(err error) error {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, fieldMessage(v))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func fieldMessage(e validator.FieldError) string {
	key := configKey(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", key)
	default:
		return fmt.Sprintf("%s failed validation: %s", key, e.Tag())
	}
}

// configKey converts a struct namespace like "Config.Server.Port" to the
// config-file key "server.port".
func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	return strings.Join(parts, ".")
}
