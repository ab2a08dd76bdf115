package db

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Probe intervals: a healthy database is re-pinged rarely, an unhealthy one
// more often so recovery is noticed quickly.
const (
	healthyProbeInterval   = 30 * time.Second
	unhealthyProbeInterval = 5 * time.Second
)

// Health tracks database availability for the request gate. It rate-limits
// pings so that per-request readiness checks stay cheap, and bounds each
// ping with the configured connect timeout so a slow database cannot stall
// requests.
type Health struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  zerolog.Logger

	mu        sync.Mutex
	available bool
	probed    bool
	lastProbe time.Time
}

// NewHealth creates a health tracker over the given pool.
func NewHealth(pool *pgxpool.Pool, timeout time.Duration, lgr zerolog.Logger) *Health {
	return &Health{
		pool:    pool,
		timeout: timeout,
		logger:  lgr,
	}
}

// Available reports whether the database answered a recent ping. The result
// is cached between probes; a failed probe flips the tracker into a faster
// re-probe cycle.
func (h *Health) Available(ctx context.Context) bool {
	h.mu.Lock()
	interval := healthyProbeInterval
	if !h.available {
		interval = unhealthyProbeInterval
	}
	if !h.lastProbe.IsZero() && time.Since(h.lastProbe) < interval {
		available := h.available
		h.mu.Unlock()
		return available
	}
	h.mu.Unlock()

	pingCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	err := h.pool.Ping(pingCtx)

	h.mu.Lock()
	defer h.mu.Unlock()
	wasAvailable := h.available
	firstProbe := !h.probed
	h.lastProbe = time.Now()
	h.probed = true
	h.available = err == nil

	if err != nil && (wasAvailable || firstProbe) {
		h.logger.Warn().Err(err).Msg("Database unavailable")
	}
	if err == nil && !wasAvailable && !firstProbe {
		h.logger.Info().Msg("Database available again")
	}
	return h.available
}
