package authz

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// HeaderAuthorization is the standard credential header name.
const HeaderAuthorization = "Authorization"

// FromHeader parses the Authorization header into an AuthData credential.
// It understands the Basic and Bearer schemes; unknown schemes and
// malformed values return ok=false rather than an error, since an absent
// or foreign credential is not a failure at this layer.
func FromHeader(h http.Header) (AuthData, bool) {
	raw := strings.TrimSpace(h.Get(HeaderAuthorization))
	if raw == "" {
		return nil, false
	}

	scheme, value, found := strings.Cut(raw, " ")
	if !found {
		return nil, false
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}

	switch strings.ToLower(scheme) {
	case "basic":
		return parseBasic(value)
	case "bearer":
		return Bearer{Token: value}, true
	default:
		return nil, false
	}
}

// APIKeyFromHeader reads an API key credential from the named header.
func APIKeyFromHeader(h http.Header, name string) (AuthData, bool) {
	key := strings.TrimSpace(h.Get(name))
	if key == "" {
		return nil, false
	}

	return APIKey{Key: key}, true
}

// SetHeader writes the credential onto outgoing request headers, the
// client-side inverse of FromHeader. API keys are written to apiKeyHeader,
// which is ignored for the other schemes.
func SetHeader(h http.Header, data AuthData, apiKeyHeader string) {
	switch d := data.(type) {
	case Basic:
		token := base64.StdEncoding.EncodeToString([]byte(d.Username + ":" + d.Password))
		h.Set(HeaderAuthorization, "Basic "+token)
	case Bearer:
		h.Set(HeaderAuthorization, "Bearer "+d.Token)
	case APIKey:
		if apiKeyHeader != "" {
			h.Set(apiKeyHeader, d.Key)
		}
	}
}

// parseBasic decodes the base64 user:password form of a Basic credential.
func parseBasic(value string) (AuthData, bool) {
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return nil, false
	}

	return Basic{Username: username, Password: password}, true
}
