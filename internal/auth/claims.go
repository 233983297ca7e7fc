package auth

import "strings"

// Claims is the structured result of verifying a bearer credential.
// It is immutable once obtained and lives for a single request.
type Claims struct {
	Active   bool   `json:"active"`
	Me       string `json:"me"`
	ClientID string `json:"client_id"`
	Scope    string `json:"scope"`
}

// Scopes returns the individual scope tokens granted to the credential.
func (c *Claims) Scopes() []string {
	return strings.Fields(c.Scope)
}

// HasScope reports whether the credential was granted the given scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes() {
		if s == scope {
			return true
		}
	}
	return false
}
