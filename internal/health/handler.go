package health

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

type ComponentStatus struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type RuntimeStats struct {
	Goroutines    int    `json:"goroutines"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	MemorySysMB   uint64 `json:"memory_sys_mb"`
	NumGC         uint32 `json:"num_gc"`
}

type DataStats struct {
	Sessions int64 `json:"sessions"`
	Messages int64 `json:"messages"`
}

type RequestStats struct {
	TotalRequests     uint64 `json:"total_requests"`
	ActiveConnections int64  `json:"active_connections"`
}

type Stats struct {
	Data     DataStats    `json:"data"`
	Requests RequestStats `json:"requests"`
	Runtime  RuntimeStats `json:"runtime"`
}

type HealthResponse struct {
	Status        Status                     `json:"status"`
	Timestamp     time.Time                  `json:"timestamp"`
	Version       string                     `json:"version"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Persistent    bool                       `json:"persistent"`
	Stats         Stats                      `json:"stats"`
	Components    map[string]ComponentStatus `json:"components"`
}

// Counter reports row counts for the readiness stats.
type Counter interface {
	Counts(ctx context.Context) (sessions, messages int64, err error)
}

type Handler struct {
	db         *gorm.DB
	redis      *redis.Client
	counter    Counter
	persistent bool
	version    string
	startTime  time.Time

	totalRequests     uint64
	activeConnections int64
}

func NewHandler(db *gorm.DB, redis *redis.Client, counter Counter, persistent bool, version string) *Handler {
	return &Handler{
		db:         db,
		redis:      redis,
		counter:    counter,
		persistent: persistent,
		version:    version,
		startTime:  time.Now(),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Liveness)
	e.GET("/health/ready", h.Readiness)
}

func (h *Handler) IncrementRequests() {
	atomic.AddUint64(&h.totalRequests, 1)
}

func (h *Handler) IncrementConnections() {
	atomic.AddInt64(&h.activeConnections, 1)
}

func (h *Handler) DecrementConnections() {
	atomic.AddInt64(&h.activeConnections, -1)
}

func (h *Handler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type probe func(context.Context) ComponentStatus

// probes skips redis when it is switched off.
func (h *Handler) probes() map[string]probe {
	probes := map[string]probe{"database": h.checkDatabase}
	if h.redis != nil {
		probes["redis"] = h.checkRedis
	}
	return probes
}

// runProbes checks every component concurrently.
func runProbes(ctx context.Context, probes map[string]probe) map[string]ComponentStatus {
	components := make(map[string]ComponentStatus, len(probes))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, check := range probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := check(ctx)
			mu.Lock()
			components[name] = status
			mu.Unlock()
		}()
	}
	wg.Wait()
	return components
}

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return RuntimeStats{
		Goroutines:    runtime.NumGoroutine(),
		MemoryAllocMB: mem.Alloc >> 20,
		MemorySysMB:   mem.Sys >> 20,
		NumGC:         mem.NumGC,
	}
}

func (h *Handler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	components := runProbes(ctx, h.probes())
	overall := computeOverallStatus(components)

	var data DataStats
	if h.counter != nil {
		sessions, messages, err := h.counter.Counts(ctx)
		if err == nil {
			data = DataStats{Sessions: sessions, Messages: messages}
		}
	}

	code := http.StatusOK
	if overall == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, HealthResponse{
		Status:        overall,
		Timestamp:     time.Now().UTC(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Persistent:    h.persistent,
		Stats: Stats{
			Data: data,
			Requests: RequestStats{
				TotalRequests:     atomic.LoadUint64(&h.totalRequests),
				ActiveConnections: atomic.LoadInt64(&h.activeConnections),
			},
			Runtime: readRuntimeStats(),
		},
		Components: components,
	})
}

// timed runs a probe and stamps the result with its latency.
func timed(probe func() (Status, string)) ComponentStatus {
	start := time.Now()
	status, errMsg := probe()
	return ComponentStatus{
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Error:     errMsg,
	}
}

func (h *Handler) checkDatabase(ctx context.Context) ComponentStatus {
	return timed(func() (Status, string) {
		if h.db == nil {
			return StatusUnhealthy, "database not configured"
		}
		sqlDB, err := h.db.DB()
		if err != nil {
			return StatusUnhealthy, "failed to get underlying db"
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return StatusUnhealthy, "ping failed"
		}
		return evaluateDBStats(sqlDB.Stats()), ""
	})
}

func evaluateDBStats(stats sql.DBStats) Status {
	if stats.MaxOpenConnections > 1 && stats.OpenConnections >= stats.MaxOpenConnections {
		return StatusDegraded
	}
	return StatusHealthy
}

// Redis only backs the summary cache, so an outage degrades the service
// instead of taking it down.
func (h *Handler) checkRedis(ctx context.Context) ComponentStatus {
	return timed(func() (Status, string) {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			return StatusDegraded, "ping failed"
		}
		return StatusHealthy, ""
	})
}

func computeOverallStatus(components map[string]ComponentStatus) Status {
	if status, ok := components["database"]; ok && status.Status == StatusUnhealthy {
		return StatusUnhealthy
	}

	for _, status := range components {
		if status.Status != StatusHealthy {
			return StatusDegraded
		}
	}

	return StatusHealthy
}
