package auth

import (
	"errors"
	"net/http"
)

// MultiAuthenticator tries multiple authenticators in order, returning the
// first successful result. An authenticator returning ErrUnauthenticated
// (no credentials of its kind present) passes the request to the next one;
// any other error (credentials present but invalid) fails immediately.
type MultiAuthenticator struct {
	authenticators []Authenticator
}

// NewMultiAuthenticator creates a multi-method authenticator that tries
// each provided authenticator in order.
func NewMultiAuthenticator(authenticators ...Authenticator) *MultiAuthenticator {
	return &MultiAuthenticator{
		authenticators: authenticators,
	}
}

// Authenticate tries each configured authenticator in order.
func (a *MultiAuthenticator) Authenticate(r *http.Request) (*Info, error) {
	if len(a.authenticators) == 0 {
		return nil, ErrUnauthenticated
	}

	for _, authenticator := range a.authenticators {
		info, err := authenticator.Authenticate(r)
		if err == nil {
			return info, nil
		}

		if !errors.Is(err, ErrUnauthenticated) {
			return nil, err
		}
	}

	return nil, ErrUnauthenticated
}

// Method returns the authentication method type.
func (a *MultiAuthenticator) Method() Method {
	return MethodMulti
}
