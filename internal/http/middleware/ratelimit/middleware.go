package ratelimit

import (
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-tracking/internal/logx"
)

// Request classes, also used as the metric label.
const (
	ClassAPI     = "api"
	ClassConnect = "ws_connect"
)

// Middleware limits requests per client IP. WebSocket upgrades are counted on their
// own limiter so a reconnect storm cannot starve the REST API and the other way round.
type Middleware struct {
	logger   logx.Logger
	denied   *prometheus.CounterVec
	api      Limiter
	connects Limiter
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithConnectLimiter sets the limiter for WebSocket upgrade requests.
func WithConnectLimiter(l Limiter) Option {
	return func(m *Middleware) {
		if l != nil {
			m.connects = l
		}
	}
}

// New creates a new Middleware. denied may be nil; it must carry a "class" label.
func New(logger logx.Logger, denied *prometheus.CounterVec, api Limiter, opts ...Option) *Middleware {
	if logger == nil {
		logger = logx.Nop()
	}
	if api == nil {
		api = NopLimiter{}
	}
	m := &Middleware{
		logger:   logger,
		denied:   denied,
		api:      api,
		connects: NopLimiter{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			class, limiter := ClassAPI, m.api
			if isUpgrade(r) {
				class, limiter = ClassConnect, m.connects
			}

			ok, wait := limiter.Allow(ip)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			// считаю отказы
			if m.denied != nil {
				m.denied.WithLabelValues(class).Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("ip", ip),
				logx.String("class", class),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", retryAfter(wait))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, `{"error":"too many requests","code":"rate_limited"}`); err != nil {
				// клиент мог оборвать соединение; это не ошибка бизнес-логики
				m.logger.Debug("rate limit response write failed",
					logx.String("ip", ip),
					logx.Err(err),
				)
			}
		})
	}
}

// retryAfter rounds up to whole seconds, at least one.
func retryAfter(wait time.Duration) string {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// clientIP expects chi's RealIP to have run, so RemoteAddr already reflects the proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
