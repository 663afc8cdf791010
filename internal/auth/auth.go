// Package auth provides optional request authentication for the API.
package auth

import (
	"context"
	"errors"
	"net/http"
)

// Method identifies the authentication method used.
type Method string

const (
	// MethodNone indicates no authentication.
	MethodNone Method = "none"
	// MethodBasic indicates HTTP Basic authentication.
	MethodBasic Method = "basic"
	// MethodAPIKey indicates API key authentication.
	MethodAPIKey Method = "apikey"
	// MethodMulti indicates multi-method authentication.
	MethodMulti Method = "multi"
)

// Info holds authenticated identity information.
type Info struct {
	Method  Method
	Subject string
}

// Authenticator validates a request and returns auth info.
type Authenticator interface {
	Authenticate(r *http.Request) (*Info, error)
	Method() Method
}

// Sentinel errors for authentication failures.
var (
	ErrUnauthenticated    = errors.New("unauthenticated: no credentials provided")
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// contextKey is the type for context keys in this package.
type contextKey string

// infoKey is the context key for Info.
const infoKey contextKey = "auth_info"

// FromContext retrieves Info from the context.
func FromContext(ctx context.Context) (*Info, bool) {
	info, ok := ctx.Value(infoKey).(*Info)
	return info, ok
}

// WithInfo stores Info in the context.
func WithInfo(ctx context.Context, info *Info) context.Context {
	return context.WithValue(ctx, infoKey, info)
}
