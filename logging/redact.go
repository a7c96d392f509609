package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"

	"github.com/jsamuelsen/go-api-runtime/authz"
)

// Value patterns that indicate credential material regardless of field name.
var (
	// JWT: three base64url segments separated by dots
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)

	basicAuthPattern = regexp.MustCompile(`(?i)^basic\s+.+$`)
)

// DefaultRedactOptions returns the default masq options for secret redaction.
// Credential carrier types are redacted wholesale so that a handler can log a
// request structure without leaking the authentication data attached to it.
//
// To add service-specific redaction, pass additional options to
// NewReplaceAttr:
//
//	replaceAttr := logging.NewReplaceAttr(
//	    masq.WithFieldName("MySecretField"),
//	    masq.WithType[MySecretType](),
//	)
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		// Credential carrier types
		masq.WithType[authz.Basic](),
		masq.WithType[authz.Bearer](),
		masq.WithType[authz.APIKey](),

		// Common sensitive field names
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("apikey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("accessToken"),
		masq.WithFieldName("access_token"),
		masq.WithFieldName("refreshToken"),
		masq.WithFieldName("refresh_token"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("credentials"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("bearer"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("session"),
		masq.WithFieldName("privateKey"),
		masq.WithFieldName("private_key"),
		masq.WithFieldName("secretKey"),
		masq.WithFieldName("secret_key"),

		// Field name prefixes for sensitive data
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),

		// Regex patterns for sensitive values
		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicAuthPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions that
// redacts sensitive data. Extra masq options are appended after
// DefaultRedactOptions.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
