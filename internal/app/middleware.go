package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/cinetick/cinetick/internal/auth"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestLogger attaches a request-scoped logger carrying the request id, so
// every log line of a request can be correlated.
func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		next.ServeHTTP(w, contextSetLogger(r, logger))
	})
}

// authenticate verifies a bearer token when one is present. Requests without
// an Authorization header pass through anonymously; route-level guards decide
// whether that is acceptable.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		claims, err := auth.ParseAccessToken([]byte(app.config.JWT.Secret), headerParts[1])
		if err != nil {
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		next.ServeHTTP(w, contextSetClaims(r, claims))
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextGetClaims(r) == nil {
			app.authenticationRequiredResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.requireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := contextGetClaims(r)

			if claims.Role != role {
				app.notPermittedResponse(w, r)
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}

// Token-bucket limiter state lives in redis, so the limit holds across
// instances. One bucket per client IP.
var rateLimitScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call("HMGET", key, "tokens", "last_refill_ms")
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	end

	redis.call("HMSET", key, "tokens", tokens, "last_refill_ms", last_refill)
	redis.call("EXPIRE", key, ttl_seconds)

	return allowed
`)

func (app *Application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.config.RateLimit.Enabled || app.redis == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := "rate_limit:" + r.RemoteAddr
		if host := strings.Split(r.RemoteAddr, ":"); len(host) > 0 {
			key = "rate_limit:" + host[0]
		}

		allowed, err := rateLimitScript.Run(
			r.Context(),
			app.redis,
			[]string{key},
			time.Now().UnixMilli(),
			app.config.RateLimit.Capacity,
			app.config.RateLimit.Refill.Milliseconds(),
			60,
		).Int()

		if err != nil {
			// The limiter is protection, not a dependency: fail open.
			app.contextGetLogger(r).Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if allowed == 0 {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
