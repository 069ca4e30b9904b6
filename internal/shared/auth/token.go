package auth

import (
	"net/http"
	"strings"
)

// CookieName is the cookie that carries the canteen access token.
const CookieName = "access_token"

// ExtractBearerToken extracts the token from the Authorization header.
// It handles the "Bearer " prefix and returns an empty string if no token is present.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader extracts the token from an Authorization header value.
//
// Example:
//
//	token := ExtractBearerTokenFromHeader("Bearer eyJhbGciOiJIUzI1NiIs...")
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	const bearerPrefix = "bearer "
	if strings.HasPrefix(strings.ToLower(header), bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return ""
}

// ExtractCookieToken reads the session cookie.
func ExtractCookieToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// ExtractToken looks at the session cookie first and falls back to the Authorization header,
// which is what non-browser clients and the websocket endpoint send.
func ExtractToken(r *http.Request) string {
	if token := ExtractCookieToken(r); token != "" {
		return token
	}
	return ExtractBearerToken(r)
}
