package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/platform/envutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *GaugeVec

	readinessComputed *CounterVec
	readinessScore    *HistogramVec
	snapshotsCreated  *CounterVec
	eventsPublished   *CounterVec
	eventsReceived    *CounterVec

	dbPool  *GaugeVec
	redisUp *GaugeVec

	families []interface{ write(io.Writer) error }
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Current is the process-wide registry, nil when metrics are disabled.
func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	d := envutil.Duration("METRICS_SCRAPE_INTERVAL", 15*time.Second)
	if d < time.Second {
		return time.Second
	}
	return d
}

// Init builds the process-wide registry once when METRICS_ENABLED is set.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

// New returns an unregistered Metrics, used directly by tests.
func New() *Metrics {
	m := &Metrics{
		apiRequests: NewCounterVec("cp_api_requests_total", "Total API requests by method/route/status.", "method", "route", "status"),
		apiLatency: NewHistogramVec(
			"cp_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			"method", "route", "status",
		),
		apiInflight:       NewGaugeVec("cp_api_inflight_requests", "In-flight API requests."),
		readinessComputed: NewCounterVec("cp_readiness_computations_total", "Readiness dashboard computations by outcome.", "outcome"),
		readinessScore: NewHistogramVec(
			"cp_readiness_score",
			"Composite readiness score of computed dashboards.",
			[]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		),
		snapshotsCreated: NewCounterVec("cp_readiness_snapshots_created_total", "Daily readiness snapshots stored."),
		eventsPublished:  NewCounterVec("cp_readiness_events_published_total", "Readiness events fanned out by type/status.", "type", "status"),
		eventsReceived:   NewCounterVec("cp_readiness_events_received_total", "Readiness events read back from the bus by type.", "type"),
		dbPool:           NewGaugeVec("cp_db_pool", "database/sql pool statistics.", "stat"),
		redisUp:          NewGaugeVec("cp_redis_up", "1 when the event bus redis answered the last ping."),
	}
	m.families = []interface{ write(io.Writer) error }{
		m.apiRequests.s, m.apiLatency.s, m.apiInflight.s,
		m.readinessComputed.s, m.readinessScore.s, m.snapshotsCreated.s, m.eventsPublished.s, m.eventsReceived.s,
		m.dbPool.s, m.redisUp.s,
	}
	return m
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, log *logger.Logger, addr string) error {
	if m == nil || strings.TrimSpace(addr) == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WriteHTTP)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if log != nil {
		log.Info("metrics server listening", "addr", addr)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, f := range m.families {
		if err := f.write(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.Inc(method, route, code)
	m.apiLatency.Observe(dur.Seconds(), method, route, code)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

// ObserveReadiness records one dashboard computation; score is ignored on error.
func (m *Metrics) ObserveReadiness(score float64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.readinessComputed.Inc("error")
		return
	}
	m.readinessComputed.Inc("ok")
	m.readinessScore.Observe(score)
}

func (m *Metrics) IncSnapshotCreated() {
	if m == nil {
		return
	}
	m.snapshotsCreated.Inc()
}

func (m *Metrics) IncEventPublished(eventType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.eventsPublished.Inc(eventType, status)
}

func (m *Metrics) IncEventReceived(eventType string) {
	if m == nil {
		return
	}
	m.eventsReceived.Inc(eventType)
}

// StartDBCollector samples the gorm connection pool until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	go func() {
		ticker := time.NewTicker(scrapeInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := sqlDB.Stats()
				m.dbPool.Set(float64(stats.OpenConnections), "open_connections")
				m.dbPool.Set(float64(stats.InUse), "in_use")
				m.dbPool.Set(float64(stats.Idle), "idle")
				m.dbPool.Set(float64(stats.WaitCount), "wait_count")
				m.dbPool.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

// StartRedisCollector pings the event bus redis until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil || strings.TrimSpace(addr) == "" {
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		ticker := time.NewTicker(scrapeInterval())
		defer ticker.Stop()
		defer rdb.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
			}
		}
	}()
}
