// Package authz defines the authorization data carried in a context stack:
// the verified caller identity attached by an enrichment wrapper, the raw
// credential forms presented on a request, and helpers for moving both
// through HTTP headers.
//
// The package only models the data shapes. Credential verification itself
// is an external collaborator reached through chain.Verifier.
package authz

import (
	"slices"
	"sort"
)

// Scopes is the set of access scopes granted to a caller. It is either an
// explicit set or All, which disables scope checking entirely.
type Scopes struct {
	all bool
	set map[string]struct{}
}

// NewScopes builds an explicit scope set from the given values.
func NewScopes(scopes ...string) Scopes {
	set := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		if s != "" {
			set[s] = struct{}{}
		}
	}

	return Scopes{set: set}
}

// AllScopes returns the marker set granting every possible scope.
func AllScopes() Scopes {
	return Scopes{all: true}
}

// All reports whether scope checking is disabled for this grant.
func (s Scopes) All() bool {
	return s.all
}

// Contains reports whether the given scope is granted.
func (s Scopes) Contains(scope string) bool {
	if s.all {
		return true
	}

	_, ok := s.set[scope]

	return ok
}

// ContainsAll reports whether every given scope is granted.
func (s Scopes) ContainsAll(scopes ...string) bool {
	for _, scope := range scopes {
		if !s.Contains(scope) {
			return false
		}
	}

	return true
}

// ContainsAny reports whether at least one of the given scopes is granted.
func (s Scopes) ContainsAny(scopes ...string) bool {
	return slices.ContainsFunc(scopes, s.Contains)
}

// List returns the granted scopes in sorted order. It returns nil for the
// All marker, which has no enumerable members.
func (s Scopes) List() []string {
	if s.all || len(s.set) == 0 {
		return nil
	}

	out := make([]string, 0, len(s.set))
	for scope := range s.set {
		out = append(out, scope)
	}

	sort.Strings(out)

	return out
}

// Authorization is the verified caller identity attached to a context stack
// after credential verification succeeds. Its presence in a handler's
// declared context type is what marks the handler as requiring
// authenticated access.
type Authorization struct {
	// Subject identifies what may be accessed, typically a user or
	// service account ID.
	Subject string

	// Scopes are the types of access permitted to the subject.
	Scopes Scopes

	// Issuer identifies the party to whom authorization was originally
	// granted, when known. Empty means unknown.
	Issuer string
}

// HasScope reports whether the authorization grants the given scope.
func (a Authorization) HasScope(scope string) bool {
	return a.Scopes.Contains(scope)
}

// HasAllScopes reports whether the authorization grants every given scope.
func (a Authorization) HasAllScopes(scopes ...string) bool {
	return a.Scopes.ContainsAll(scopes...)
}

// HasAnyScope reports whether the authorization grants at least one of the
// given scopes.
func (a Authorization) HasAnyScope(scopes ...string) bool {
	return a.Scopes.ContainsAny(scopes...)
}
