// Package probe drives the test payload sequence against a collector.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ollystack/otlp-probe/internal/config"
	"github.com/ollystack/otlp-probe/internal/emitter"
	"github.com/ollystack/otlp-probe/internal/otlp"
)

// Probe sends the canned payloads in fixture order.
type Probe struct {
	cfg     *config.Config
	emitter *emitter.Emitter
	logger  *zap.Logger

	mu      sync.RWMutex
	running bool
	stats   Stats
}

// Stats tracks sequence outcomes in continuous mode.
type Stats struct {
	StartTime time.Time
	Runs      int64
	Sends     int64
	Failures  int64
	LastError string
}

// step is one payload in the sequence: a telemetry kind, its endpoint and a
// builder stamped with the send-time clock.
type step struct {
	kind     string
	endpoint string
	build    func(now time.Time) any
}

// New creates a probe around an emitter.
func New(cfg *config.Config, em *emitter.Emitter, logger *zap.Logger) *Probe {
	return &Probe{
		cfg:     cfg,
		emitter: em,
		logger:  logger,
		stats:   Stats{StartTime: time.Now()},
	}
}

// steps returns the full sequence in fixture order: log, gauge metric, the
// three synthetic metric sets, then the trace.
func (p *Probe) steps() []step {
	pc := p.cfg.Probe
	t := p.cfg.Target
	return []step{
		{"log", t.LogsEndpoint, func(now time.Time) any {
			return otlp.LogEnvelope(pc.HostName, pc.HostRegion, pc.Message, now)
		}},
		{"metric", t.MetricsEndpoint, func(now time.Time) any {
			return otlp.GaugeEnvelope(pc.HostName, pc.HostRegion, pc.GaugeValue, now)
		}},
		{"runtime metrics", t.MetricsEndpoint, func(now time.Time) any {
			return otlp.GoRuntimeMetrics(now)
		}},
		{"redis metrics", t.MetricsEndpoint, func(now time.Time) any {
			return otlp.RedisMetrics(now)
		}},
		{"database metrics", t.MetricsEndpoint, func(now time.Time) any {
			return otlp.DatabaseMetrics(now)
		}},
		{"trace", t.TracesEndpoint, func(now time.Time) any {
			return otlp.SpanEnvelope(pc.HostName, pc.HostRegion, pc.SpanName, now)
		}},
	}
}

// RunSequence sends every payload once, pausing between sends. The first
// failed send aborts the run and is returned.
func (p *Probe) RunSequence(ctx context.Context) error {
	for i, s := range p.steps() {
		if i > 0 {
			if err := p.pause(ctx); err != nil {
				return err
			}
		}
		p.logger.Info("Sending", zap.String("type", s.kind))
		if _, err := p.emitter.Send(ctx, s.endpoint, s.kind, s.build(time.Now())); err != nil {
			return fmt.Errorf("send %s: %w", s.kind, err)
		}
	}
	return nil
}

// SendOne sends a single payload by kind: log, metric, trace, runtime,
// redis or database.
func (p *Probe) SendOne(ctx context.Context, kind string) error {
	pc := p.cfg.Probe
	t := p.cfg.Target

	var endpoint string
	var payload any
	now := time.Now()

	switch kind {
	case "log":
		endpoint, payload = t.LogsEndpoint, otlp.LogEnvelope(pc.HostName, pc.HostRegion, pc.Message, now)
	case "metric":
		endpoint, payload = t.MetricsEndpoint, otlp.GaugeEnvelope(pc.HostName, pc.HostRegion, pc.GaugeValue, now)
	case "trace":
		endpoint, payload = t.TracesEndpoint, otlp.SpanEnvelope(pc.HostName, pc.HostRegion, pc.SpanName, now)
	case "runtime":
		endpoint, payload = t.MetricsEndpoint, otlp.GoRuntimeMetrics(now)
	case "redis":
		endpoint, payload = t.MetricsEndpoint, otlp.RedisMetrics(now)
	case "database":
		endpoint, payload = t.MetricsEndpoint, otlp.DatabaseMetrics(now)
	default:
		return fmt.Errorf("unknown payload kind %q", kind)
	}

	_, err := p.emitter.Send(ctx, endpoint, kind, payload)
	return err
}

// RunLoop re-runs the sequence on an interval until the context is cancelled,
// logging failures instead of aborting. A health/metrics listener runs for
// the duration.
func (p *Probe) RunLoop(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("probe already running")
	}
	p.running = true
	p.stats = Stats{StartTime: time.Now()}
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	srv := p.startHealthServer()
	defer p.stopHealthServer(srv)

	ticker := time.NewTicker(p.cfg.Loop.Interval)
	defer ticker.Stop()

	p.logger.Info("Probe loop started",
		zap.Duration("interval", p.cfg.Loop.Interval),
		zap.Int("health_port", p.cfg.Loop.HealthPort),
	)

	// First run immediately, then on the ticker
	p.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Probe loop stopped", zap.Int64("runs", p.Stats().Runs))
			return nil
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *Probe) runOnce(ctx context.Context) {
	for i, s := range p.steps() {
		if i > 0 {
			if err := p.pause(ctx); err != nil {
				return
			}
		}
		_, err := p.emitter.Send(ctx, s.endpoint, s.kind, s.build(time.Now()))

		p.mu.Lock()
		p.stats.Sends++
		if err != nil {
			p.stats.Failures++
			p.stats.LastError = err.Error()
		}
		p.mu.Unlock()

		if err != nil {
			p.logger.Warn("Send failed", zap.String("type", s.kind), zap.Error(err))
		}
	}

	p.mu.Lock()
	p.stats.Runs++
	p.mu.Unlock()
}

// pause waits out the configured spacing, or returns early when the context
// is cancelled.
func (p *Probe) pause(ctx context.Context) error {
	if p.cfg.Probe.Spacing <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.cfg.Probe.Spacing)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Probe) startHealthServer() *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		p.mu.RLock()
		running := p.running
		p.mu.RUnlock()

		if running {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Not Ready"))
		}
	})

	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", p.cfg.Loop.HealthPort),
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			p.logger.Error("Health server error", zap.Error(err))
		}
	}()

	return srv
}

func (p *Probe) stopHealthServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

// Stats returns current loop statistics
func (p *Probe) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}
