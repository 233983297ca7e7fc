package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospectSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "tok-123", r.PostFormValue("token"))

		_ = json.NewEncoder(w).Encode(Claims{
			Active:   true,
			Me:       "https://greg.example/",
			ClientID: "https://quill.p3k.io/",
			Scope:    "create media",
		})
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "client", "secret")
	claims, err := v.Introspect(context.Background(), "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "https://greg.example/", claims.Me)
	assert.Equal(t, "https://quill.p3k.io/", claims.ClientID)
	assert.Equal(t, []string{"create", "media"}, claims.Scopes())
	assert.True(t, claims.HasScope("media"))
	assert.False(t, claims.HasScope("delete"))
}

func TestIntrospectRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "client", "secret")
	_, err := v.Introspect(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIntrospectInactiveToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Claims{Active: false})
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "client", "secret")
	_, err := v.Introspect(context.Background(), "revoked")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIntrospectEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "client", "secret")
	_, err := v.Introspect(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrVerifierUnavailable)
}

func TestIntrospectEndpointUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	v := NewVerifier(srv.URL, "client", "secret")
	_, err := v.Introspect(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrVerifierUnavailable)
}

func TestIntrospectMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "client", "secret")
	_, err := v.Introspect(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrVerifierUnavailable)
}
