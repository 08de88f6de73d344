// Package common contains constants and helpers shared by the client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the raw credential in the Authorization header.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
	// CredentialMetadataKey is the fixed storage key of the persisted credential.
	CredentialMetadataKey = "token"
)
