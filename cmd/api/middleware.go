package main

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"strings"

	"spa/internal/auth"
)

type adminKey string

const adminCtx adminKey = "admin"

// BasicAuthMiddleware guards the operational endpoints. An unset AUTH_BASIC_USER locks
// them entirely.
func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			want := app.config.auth.basic
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(want.user)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(want.pass)) == 1
			if want.user == "" || !userOK || !passOK {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminTokenMiddleware admits bearer tokens carrying the admin role and stores the
// token subject in the request context.
func (app *application) AdminTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
			return
		}

		jwtToken, err := app.authenticator.ValidateAccessToken(parts[1])
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		if auth.Role(jwtToken) != auth.RoleAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), adminCtx, auth.Subject(jwtToken))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getAdminFromContext(r *http.Request) string {
	admin, _ := r.Context().Value(adminCtx).(string)
	return admin
}

func (app *application) ReviewRateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.reviews.rateLimiter.Enabled && app.reviewLimiter != nil {
			if allow, retryAfter := app.reviewLimiter.Allow(clientIP(r)); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr. middleware.RealIP has already replaced it
// with the forwarded address when a proxy header is present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
