// Package domain contains core business entities and rules.
package domain

// EchoRequest is an inbound echo message before any context is attached.
// This is a domain entity - it has no knowledge of external systems.
type EchoRequest struct {
	// Message is the text to echo back.
	Message string
}

// EchoReply is the echoed message together with the identity and request
// metadata the wrapper chain attached on the way in.
type EchoReply struct {
	// Message is the echoed text.
	Message string

	// Subject is the verified caller identity.
	Subject string

	// Scopes are the caller's granted scopes, in sorted order. Nil when
	// the grant is unrestricted.
	Scopes []string

	// RequestID is the identifier assigned at the transport boundary.
	RequestID string
}
