// Package auth verifies opaque bearer credentials against an external
// OAuth 2.0 token introspection endpoint (RFC 7662). Tokens are never
// decoded locally.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthenticated is returned when the credential is missing, revoked,
// or rejected by the introspection endpoint.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrVerifierUnavailable is returned when the introspection endpoint fails
// for reasons other than an invalid credential.
var ErrVerifierUnavailable = errors.New("token verifier unavailable")

// Verifier checks bearer tokens against a token introspection endpoint.
// It is safe for concurrent use by multiple requests.
type Verifier struct {
	endpoint     string
	clientID     string
	clientSecret string
	client       *http.Client
}

// NewVerifier creates a Verifier that authenticates to the introspection
// endpoint with the given client credentials.
func NewVerifier(endpoint, clientID, clientSecret string) *Verifier {
	return &Verifier{
		endpoint:     endpoint,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Introspect submits the token to the introspection endpoint and returns its
// claims. A rejected or inactive token yields ErrUnauthenticated; any other
// endpoint failure yields an error wrapping ErrVerifierUnavailable.
func (v *Verifier) Introspect(ctx context.Context, token string) (*Claims, error) {
	form := url.Values{"token": {token}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(v.clientID, v.clientSecret)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthenticated
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrVerifierUnavailable, resp.StatusCode)
	}

	var claims Claims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrVerifierUnavailable, err)
	}

	if !claims.Active {
		return nil, ErrUnauthenticated
	}

	return &claims, nil
}
