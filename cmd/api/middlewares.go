package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil && rec != http.ErrAbortHandler {
				// panic values are not always errors (strings are common)
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
			time.Sleep(5 * time.Minute)
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err, "")
				return
			}
			mu.Lock()
			if _, ok := clients[ip]; !ok {
				clients[ip] = &client{
					limiter:  rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst),
					lastSeen: time.Now(),
				}
			}
			limiter := clients[ip].limiter
			clients[ip].lastSeen = time.Now()
			mu.Unlock()
			if !limiter.Allow() {
				log.Warn("rate limit exceeded", "ip", ip)
				app.Http.Response(
					w, r,
					envelop{"error": "rate limit exceeded"},
					"Can't process request see an error below.",
					http.StatusTooManyRequests,
				)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyUserID CtxKey = "userID"

// AnonymousUserID marks requests that carry no identity.
const AnonymousUserID int64 = 0

// Authenticate resolves the caller's identity from a Bearer token. Token
// issuance lives outside this service: the uid claim of a token signed with
// the shared secret is trusted as-is. Requests without a header pass through
// as anonymous; the per-route guard decides whether that is acceptable.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := AnonymousUserID

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			const bearerLength = len("Bearer ")
			if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) < bearerLength+1 {
				app.Http.BadRequest(w, r, "Invalid Authorization header, should be 'Bearer <token>'")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			parsedToken, err := jwt.Parse(
				token,
				func(token *jwt.Token) (any, error) { return []byte(app.cfg.AppSecret), nil },
				jwt.WithValidMethods([]string{"HS256"}),
			)
			if err != nil || !parsedToken.Valid {
				app.log.Warn("invalid or expired token")
				app.Http.Unauthorized(w, r, "Invalid or expired token")
				return
			}
			if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok {
				if uid, exists := claims["uid"].(float64); exists {
					userID = int64(uid)
				}
			}
		}
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyUserID, userID))
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.contextUserID(r) == AnonymousUserID {
			app.Http.Unauthorized(w, r, "You must be authenticated to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *Application) contextUserID(r *http.Request) int64 {
	userID, ok := r.Context().Value(CtxKeyUserID).(int64)
	if !ok {
		return AnonymousUserID
	}
	return userID
}
