package authhandlers

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"golang.org/x/time/rate"
)

const sweepInterval = 5 * time.Minute

// LoginLimiter throttles password attempts per client address. A bucket that has
// refilled completely remembers nothing useful, so sweeps drop it.
type LoginLimiter struct {
	mu        sync.Mutex
	clients   map[string]*rate.Limiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
	logger    *slog.Logger
}

func NewLoginLimiter(limit rate.Limit, burst int, logger *slog.Logger) *LoginLimiter {
	return &LoginLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
		logger:  logger,
	}
}

func (l *LoginLimiter) allow(client string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepInterval {
		for addr, lim := range l.clients {
			if lim.TokensAt(now) >= float64(l.burst) {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	lim, ok := l.clients[client]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.clients[client] = lim
	}
	return lim.AllowN(now, 1)
}

// Middleware rejects a client's login once its bucket is empty. RemoteAddr has
// already been rewritten by chi's RealIP when the app sits behind a proxy.
func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !l.allow(client) {
			l.logger.WarnContext(r.Context(), "Login attempt throttled",
				attr.ExtractCorrelationID(r.Context()),
				attr.String("client", client),
			)
			httpjson.Fail(w, http.StatusTooManyRequests, httpjson.CodeRateLimited, "too many login attempts, try again shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
