package httpserver

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"hoteldir/internal/domain"
)

// TokenVerifier checks a bearer token and returns the caller's identity.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

type ctxKey int

const identityKey ctxKey = 0

// CallerIdentity returns the authenticated identity, if any.
func CallerIdentity(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// Authenticate requires a valid Bearer token and stores the identity in
// the request context.
func (h *Handlers) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
			fail(w, http.StatusUnauthorized, "Authentication required.", "Provide a Bearer token in the Authorization header.")
			return
		}
		id, err := h.Tokens.Verify(strings.TrimPrefix(raw, "Bearer "))
		if err != nil {
			h.failErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
	})
}

// RequirePermission allows the request only when the caller's role holds
// the exact {resource, action} grant. Runs after Authenticate.
func (h *Handlers) RequirePermission(res domain.Resource, act domain.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := CallerIdentity(r.Context())
			if !ok {
				fail(w, http.StatusUnauthorized, "Authentication required.", "")
				return
			}
			allowed, err := h.Authz.Allowed(r.Context(), id.Role, res, act)
			if err != nil {
				h.failErr(w, err)
				return
			}
			if !allowed {
				fail(w, http.StatusForbidden, "Access denied.", "Your role does not permit this operation.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the request on the admin role. Role equality, not a
// permission-table lookup.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := CallerIdentity(r.Context())
		if !ok {
			fail(w, http.StatusUnauthorized, "Authentication required.", "")
			return
		}
		if id.Role != domain.RoleAdmin {
			fail(w, http.StatusForbidden, "Access denied.", "Administrator role required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---- login rate limiting ----

type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = lim
	}
	return lim
}

// LoginRateLimit throttles per client IP.
func (h *Handlers) LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.loginLimiter.get(remoteIP(r)).Allow() {
			fail(w, http.StatusTooManyRequests, "Too many requests.", "Slow down and try again shortly.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
