package chain

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/authz"
)

// Verifier turns a raw credential into a verified identity. Its internals
// (token validation, key lookup) are outside this package; implementations
// must tolerate concurrent calls, since one verifier serves every in-flight
// request.
type Verifier interface {
	Verify(ctx context.Context, data authz.AuthData) (authz.Authorization, error)
}

// VerifierFunc adapts a plain function to the Verifier interface.
type VerifierFunc func(ctx context.Context, data authz.AuthData) (authz.Authorization, error)

// Verify implements Verifier.
func (f VerifierFunc) Verify(ctx context.Context, data authz.AuthData) (authz.Authorization, error) {
	return f(ctx, data)
}

// CredentialSource extracts the raw credential presented on a request.
// The transport adapter decides where credentials live (headers, context);
// ok=false means none were presented.
type CredentialSource[B any] func(ctx context.Context, body B) (authz.AuthData, bool)

// AuthDataFromContext is a CredentialSource reading the credential the
// transport adapter stored with authz.ContextWithAuthData.
func AuthDataFromContext[B any](ctx context.Context, _ B) (authz.AuthData, bool) {
	return authz.AuthDataFromContext(ctx)
}

// VerifyCredentials builds the enricher for an authorization field: extract
// the presented credential, verify it, and yield the resulting identity.
// A missing credential fails with ErrNoCredentials; a rejected credential
// fails with the verifier's error. Either way AddField short-circuits and
// the inner service never sees a forged or default identity.
func VerifyCredentials[B any, C any](source CredentialSource[B], verifier Verifier) Enricher[B, C, authz.Authorization] {
	return func(ctx context.Context, body B, _ C) (authz.Authorization, error) {
		data, ok := source(ctx, body)
		if !ok {
			return authz.Authorization{}, ErrNoCredentials
		}

		return verifier.Verify(ctx, data)
	}
}

// AllowAll is an enricher that grants every request the configured subject
// with all scopes, without inspecting credentials. Intended for development
// and for endpoints whose access control happens upstream.
func AllowAll[B any, C any](subject string) Enricher[B, C, authz.Authorization] {
	return func(context.Context, B, C) (authz.Authorization, error) {
		return authz.Authorization{
			Subject: subject,
			Scopes:  authz.AllScopes(),
		}, nil
	}
}
