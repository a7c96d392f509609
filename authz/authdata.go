package authz

// AuthData is one raw credential form presented on a request, stored before
// verification on the server side and used to authenticate outgoing client
// requests. The concrete forms are Basic, Bearer and APIKey.
type AuthData interface {
	// Scheme names the credential form, e.g. "basic" or "bearer".
	Scheme() string

	isAuthData()
}

// Basic is an HTTP Basic username/password credential.
type Basic struct {
	Username string
	Password string
}

// Bearer is an HTTP Bearer token credential, used for OAuth2.
type Bearer struct {
	Token string
}

// APIKey is a header or query parameter API key credential.
type APIKey struct {
	Key string
}

// Scheme implements AuthData.
func (Basic) Scheme() string { return "basic" }

// Scheme implements AuthData.
func (Bearer) Scheme() string { return "bearer" }

// Scheme implements AuthData.
func (APIKey) Scheme() string { return "apikey" }

func (Basic) isAuthData()  {}
func (Bearer) isAuthData() {}
func (APIKey) isAuthData() {}

// NewBasic builds a Basic credential.
func NewBasic(username, password string) AuthData {
	return Basic{Username: username, Password: password}
}

// NewBearer builds a Bearer token credential.
func NewBearer(token string) AuthData {
	return Bearer{Token: token}
}

// NewAPIKey builds an API key credential.
func NewAPIKey(key string) AuthData {
	return APIKey{Key: key}
}
