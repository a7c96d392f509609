package app

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/jsamuelsen/go-api-runtime/authz"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
)

// Credential is a single statically configured identity the verifier
// accepts. Exactly one credential form (API key, username/password, or
// bearer token) should be set; the config layer enforces this.
type Credential struct {
	Subject   string
	APIKey    string
	Username  string
	Password  string
	Token     string
	Scopes    []string
	AllScopes bool
}

// StaticVerifier resolves presented credentials against a fixed credential
// list. It is the demo implementation of the chain.Verifier contract; a real
// deployment would swap in a token introspection or OIDC-backed verifier
// without touching the chain.
type StaticVerifier struct {
	issuer string
	creds  []Credential
}

// NewStaticVerifier creates a verifier over the given credential list.
// Authorizations it issues carry the given issuer.
func NewStaticVerifier(issuer string, creds []Credential) *StaticVerifier {
	return &StaticVerifier{issuer: issuer, creds: creds}
}

// Verify matches the presented credentials against the configured list and
// returns the caller identity on success.
func (v *StaticVerifier) Verify(_ context.Context, data authz.AuthData) (authz.Authorization, error) {
	switch d := data.(type) {
	case authz.APIKey:
		for _, c := range v.creds {
			if c.APIKey != "" && constantTimeEqual(c.APIKey, d.Key) {
				return v.grant(c), nil
			}
		}
	case authz.Basic:
		for _, c := range v.creds {
			if c.Username != "" && c.Username == d.Username &&
				constantTimeEqual(c.Password, d.Password) {
				return v.grant(c), nil
			}
		}
	case authz.Bearer:
		for _, c := range v.creds {
			if c.Token != "" && constantTimeEqual(c.Token, d.Token) {
				return v.grant(c), nil
			}
		}
	default:
		return authz.Authorization{}, fmt.Errorf("verifying credentials: %w",
			domain.NewUnauthenticatedError(data.Scheme(), "unsupported credential scheme"))
	}

	return authz.Authorization{}, fmt.Errorf("verifying credentials: %w",
		domain.NewUnauthenticatedError(data.Scheme(), "unknown credentials"))
}

func (v *StaticVerifier) grant(c Credential) authz.Authorization {
	scopes := authz.NewScopes(c.Scopes...)
	if c.AllScopes {
		scopes = authz.AllScopes()
	}

	return authz.Authorization{
		Subject: c.Subject,
		Scopes:  scopes,
		Issuer:  v.issuer,
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
