package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cinetick/cinetick/internal/auth"
)

type contextKey string

const (
	claimsContextKey = contextKey("claims")
	loggerContextKey = contextKey("logger")
)

func contextSetClaims(r *http.Request, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsContextKey, claims)
	return r.WithContext(ctx)
}

// contextGetClaims returns the verified identity, or nil for an anonymous
// request.
func contextGetClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*auth.Claims)
	return claims
}

func (app *Application) contextGetUserId(r *http.Request) int {
	claims := contextGetClaims(r)
	if claims == nil {
		panic("missing authenticated user in context")
	}

	return claims.UserID
}

func contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
