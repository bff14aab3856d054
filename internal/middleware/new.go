package middleware

import (
	"retail-admin-web/internal/session"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
)

type Middleware struct {
	l        log.Logger
	sessions *session.Manager
	metrics  *metrics.Collector
	limiter  *rateLimiter
}

// Config is the dependency bag passed to New.
type Config struct {
	Sessions *session.Manager
	Metrics  *metrics.Collector
	// LoginPerMin bounds login attempts per client IP; zero disables the limit.
	LoginPerMin int
}

func New(l log.Logger, cfg Config) Middleware {
	return Middleware{
		l:        l,
		sessions: cfg.Sessions,
		metrics:  cfg.Metrics,
		limiter:  newRateLimiter(cfg.LoginPerMin),
	}
}
