package authz

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScopes(t *testing.T) {
	s := NewScopes("read", "write", "")

	assert.False(t, s.All())
	assert.True(t, s.Contains("read"))
	assert.True(t, s.Contains("write"))
	assert.False(t, s.Contains(""))
	assert.False(t, s.Contains("admin"))
	assert.Equal(t, []string{"read", "write"}, s.List())
}

func TestAllScopes(t *testing.T) {
	s := AllScopes()

	assert.True(t, s.All())
	assert.True(t, s.Contains("anything"))
	assert.True(t, s.ContainsAll("a", "b", "c"))
	assert.Nil(t, s.List())
}

func TestScopes_ContainsAllAndAny(t *testing.T) {
	s := NewScopes("read", "write")

	assert.True(t, s.ContainsAll("read", "write"))
	assert.False(t, s.ContainsAll("read", "admin"))
	assert.True(t, s.ContainsAny("admin", "write"))
	assert.False(t, s.ContainsAny("admin", "root"))
}

func TestAuthorization_ScopeChecks(t *testing.T) {
	a := Authorization{
		Subject: "user-1",
		Scopes:  NewScopes("orders:read"),
		Issuer:  "gateway",
	}

	assert.True(t, a.HasScope("orders:read"))
	assert.False(t, a.HasScope("orders:write"))
	assert.True(t, a.HasAnyScope("orders:write", "orders:read"))
	assert.False(t, a.HasAllScopes("orders:read", "orders:write"))
}

func TestFromHeader_Bearer(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderAuthorization, "Bearer abc.def.ghi")

	data, ok := FromHeader(h)
	require.True(t, ok)
	assert.Equal(t, Bearer{Token: "abc.def.ghi"}, data)
	assert.Equal(t, "bearer", data.Scheme())
}

func TestFromHeader_Basic(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte("alice:s3cret")))

	data, ok := FromHeader(h)
	require.True(t, ok)
	assert.Equal(t, Basic{Username: "alice", Password: "s3cret"}, data)
}

func TestFromHeader_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "no scheme", value: "justavalue"},
		{name: "unknown scheme", value: "Digest abc"},
		{name: "basic not base64", value: "Basic %%%"},
		{name: "basic no colon", value: "Basic " + base64.StdEncoding.EncodeToString([]byte("alice"))},
		{name: "blank value", value: "Bearer   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set(HeaderAuthorization, tt.value)
			}

			_, ok := FromHeader(h)
			assert.False(t, ok)
		})
	}
}

func TestAPIKeyFromHeader(t *testing.T) {
	h := http.Header{}
	h.Set("X-API-Key", "key-123")

	data, ok := APIKeyFromHeader(h, "X-API-Key")
	require.True(t, ok)
	assert.Equal(t, APIKey{Key: "key-123"}, data)

	_, ok = APIKeyFromHeader(h, "X-Other-Key")
	assert.False(t, ok)
}

func TestSetHeader_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data AuthData
	}{
		{name: "basic", data: Basic{Username: "alice", Password: "pw"}},
		{name: "bearer", data: Bearer{Token: "tok-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			SetHeader(h, tt.data, "")

			parsed, ok := FromHeader(h)
			require.True(t, ok)
			assert.Equal(t, tt.data, parsed)
		})
	}
}

func TestSetHeader_APIKey(t *testing.T) {
	h := http.Header{}
	SetHeader(h, APIKey{Key: "key-9"}, "X-API-Key")

	assert.Equal(t, "key-9", h.Get("X-API-Key"))
	assert.Empty(t, h.Get(HeaderAuthorization))
}

func TestAuthDataContext_RoundTrip(t *testing.T) {
	ctx := ContextWithAuthData(context.Background(), Bearer{Token: "t"})

	data, ok := AuthDataFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, Bearer{Token: "t"}, data)

	_, ok = AuthDataFromContext(context.Background())
	assert.False(t, ok)
}

func TestAuthorizationContext_RoundTrip(t *testing.T) {
	want := Authorization{Subject: "svc-a", Scopes: AllScopes()}

	ctx := ContextWithAuthorization(context.Background(), want)

	got, ok := AuthorizationFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
