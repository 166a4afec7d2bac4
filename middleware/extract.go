package middleware

import (
	"net/http"
	"strings"
)

// TokenExtractor returns the raw token of a request, or an empty string.
type TokenExtractor func(*http.Request) string

// FromHeader extracts the token from the "Authorization: Bearer $token" header.
// The scheme is case-insensitive.
func FromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// FromQuery extracts the token from the URL query parameter "param".
func FromQuery(param string) TokenExtractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(param)
	}
}

// FromCookie extracts the token from the cookie "name".
func FromCookie(name string) TokenExtractor {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

func extract(r *http.Request, extractors []TokenExtractor) string {
	for _, ext := range extractors {
		if token := ext(r); token != "" {
			return token
		}
	}
	return ""
}
