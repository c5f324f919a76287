package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ContextKeyToken is the context key for the JWT token
	ContextKeyToken contextKey = "jwt_token"
	// ContextKeyUser is the context key for the user ID
	ContextKeyUser contextKey = "user_id"
	// ContextKeyEmail is the context key for the user email
	ContextKeyEmail contextKey = "user_email"
)

// Middleware verifies bearer tokens and attaches the session user to the request
type Middleware struct {
	tokens *TokenIssuer
	logger *logrus.Logger
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(tokens *TokenIssuer, logger *logrus.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		logger: logger,
	}
}

// ExtractToken validates the Authorization header and stores the user in the context.
// Requests without a usable token continue unauthenticated; resolvers decide
// whether that is allowed.
func (m *Middleware) ExtractToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Debug("No Authorization header found")
			next.ServeHTTP(w, r)
			return
		}

		// Parse Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
			m.logger.Warn("Invalid Authorization header format")
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimSpace(parts[1])

		claims, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.WithError(err).Debug("JWT validation failed - continuing unauthenticated")
			next.ServeHTTP(w, r)
			return
		}

		m.logger.WithFields(logrus.Fields{
			"user":  claims.Subject,
			"email": claims.Email,
		}).Debug("JWT validated")

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.Subject, claims.Email, token)))
	})
}

// WithUser returns a context carrying an authenticated user
func WithUser(ctx context.Context, userID, email, token string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyToken, token)
	ctx = context.WithValue(ctx, ContextKeyUser, userID)
	ctx = context.WithValue(ctx, ContextKeyEmail, email)
	return ctx
}

// GetTokenFromContext extracts the JWT token from the request context
func GetTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(ContextKeyToken).(string); ok {
		return token
	}
	return ""
}

// GetUserFromContext extracts the user ID from the request context
func GetUserFromContext(ctx context.Context) string {
	if user, ok := ctx.Value(ContextKeyUser).(string); ok {
		return user
	}
	return ""
}

// GetEmailFromContext extracts the email from the request context
func GetEmailFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(ContextKeyEmail).(string); ok {
		return email
	}
	return ""
}
