package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SetAuthToken caches a bearer token for subsequent requests.
// Pass an empty string to clear it.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.authToken = token
	c.mu.Unlock()
}

// AuthToken returns the currently cached bearer token, which may be empty.
func (c *Client) AuthToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authToken
}

// usableAuthToken returns the cached token only if it has not expired.
// An expired token is dropped so the next login starts clean instead of
// the service rejecting every request with a stale Authorization header.
func (c *Client) usableAuthToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authToken == "" {
		return ""
	}
	if tokenExpired(c.authToken) {
		c.authToken = ""
		return ""
	}
	return c.authToken
}

// tokenExpired inspects a JWT's exp claim without verifying the
// signature — the signing key lives on the service, so the client can
// only read the claims, not validate them. A token that does not parse
// is treated as expired.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
