package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"logistics/internal/core/application/session"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	principalKey = "principal"
	tokenKey     = "token"

	limiterIdleTTL = 30 * time.Minute
)

var (
	errMissingToken = errs.NewUnauthorizedError("missing bearer token")
	errTooManyLogin = echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
)

// authenticate resolves the bearer token to a principal and stores both in the context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request())
		if token == "" {
			return errMissingToken
		}

		principal, err := s.sessions.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(principalKey, principal)
		c.Set(tokenKey, token)
		return next(c)
	}
}

// requireRole lets through only principals holding one of roles.
func requireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := principalFrom(c)
			if !ok || !slices.Contains(roles, principal.Role) {
				return errForbidden
			}
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (session.Principal, bool) {
	p, ok := c.Get(principalKey).(session.Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	scheme, token, found := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
	if !found || !strings.EqualFold(scheme, session.TokenType) {
		return ""
	}
	return strings.TrimSpace(token)
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "Request handled with error",
					slog.Group("http", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "Request handled", slog.Group("http", attrs...))
			return nil
		},
	})
}

// loginLimiter throttles login attempts per client IP with one token bucket each.
// Buckets idle for longer than limiterIdleTTL are dropped on the next sweep.
type loginLimiter struct {
	mu        sync.Mutex
	perMinute int
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginLimiter(perMinute int, now func() time.Time) *loginLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &loginLimiter{
		perMinute: perMinute,
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
		now:       now,
	}
}

func (l *loginLimiter) allow(ip string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for key, b := range l.buckets {
			if now.Sub(b.lastSeen) > limiterIdleTTL {
				delete(l.buckets, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (s *Server) limitLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiter.allow(c.RealIP()) {
			return errTooManyLogin
		}
		return next(c)
	}
}
