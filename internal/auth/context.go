package auth

import (
	"context"
	"net/http"
	"strings"
)

type accessTokenKey struct{}

// WithAccessToken stores the caller's raw access token in context.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext retrieves the access token from context (if any).
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(accessTokenKey{}).(string)
	return tok, ok && tok != ""
}

// TokenFromRequest extracts an access token from the Authorization header,
// falling back to the named cookie. It returns "" when neither is present.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if tok, ok := parseBearer(r.Header.Get("Authorization")); ok {
		return tok
	}
	if cookieName == "" {
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

func parseBearer(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}
