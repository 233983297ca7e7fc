package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapub/service/internal/auth"
)

func introspectionServer(t *testing.T, claims auth.Claims) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(claims)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func gate(verifier *auth.Verifier, allowedUsername string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			http.Error(w, "claims missing from context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireScope(verifier, "media", allowedUsername)(next)
}

func decodeError(t *testing.T, body *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body.Body.Bytes(), &payload))
	return payload
}

func TestRequireScopeMissingHeader(t *testing.T) {
	srv := introspectionServer(t, auth.Claims{Active: true, Scope: "media"})
	handler := gate(auth.NewVerifier(srv.URL, "client", "secret"), "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/media", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, map[string]string{"error": "unauthorized"}, decodeError(t, rec))
}

func TestRequireScopeMalformedHeader(t *testing.T) {
	srv := introspectionServer(t, auth.Claims{Active: true, Scope: "media"})
	handler := gate(auth.NewVerifier(srv.URL, "client", "secret"), "")

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireScopeInsufficientScope(t *testing.T) {
	srv := introspectionServer(t, auth.Claims{Active: true, Me: "https://greg.example/", Scope: "create update"})
	handler := gate(auth.NewVerifier(srv.URL, "client", "secret"), "")

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, map[string]string{"error": "insufficient_scope"}, decodeError(t, rec))
}

func TestRequireScopePrincipalMismatch(t *testing.T) {
	srv := introspectionServer(t, auth.Claims{Active: true, Me: "https://mallory.example/", Scope: "media"})
	handler := gate(auth.NewVerifier(srv.URL, "client", "secret"), "https://greg.example/")

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Indistinguishable from a missing credential on purpose.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, map[string]string{"error": "unauthorized"}, decodeError(t, rec))
}

func TestRequireScopeAllowsMatchingPrincipal(t *testing.T) {
	srv := introspectionServer(t, auth.Claims{Active: true, Me: "https://greg.example/", Scope: "media"})
	handler := gate(auth.NewVerifier(srv.URL, "client", "secret"), "https://greg.example/")

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireScopeVerifierDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	handler := gate(auth.NewVerifier(srv.URL, "client", "secret"), "")

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "server_error", decodeError(t, rec)["error"])
}
