// Package emitter delivers OTLP/HTTP JSON payloads to a collector endpoint.
package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failure response is kept for the error.
const maxErrorBody = 4096

// Config configures the emitter transport.
type Config struct {
	// APIKey is sent as X-API-Key when set.
	APIKey string

	// BearerToken is sent as an Authorization header when set.
	BearerToken string

	// Timeout bounds each send, connection included.
	Timeout time.Duration
}

// Result reports a completed send.
type Result struct {
	StatusCode int
	Bytes      int
}

// StatusError is returned when the collector answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Emitter POSTs JSON payloads. Each call is independent; there is no
// batching, retrying or buffering.
type Emitter struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// New creates an emitter with its own HTTP client.
func New(cfg Config, logger *zap.Logger) *Emitter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Emitter{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Send serializes payload and POSTs it to endpoint. kind names the telemetry
// kind ("log", "metric", ...) for logging and instrumentation. A non-2xx
// response is returned as a *StatusError; connection-level failures are
// returned wrapped. On success the status is logged and reported in Result.
func (e *Emitter) Send(ctx context.Context, endpoint, kind string, payload any) (Result, error) {
	start := time.Now()

	body, err := json.Marshal(payload)
	if err != nil {
		payloadsSent.WithLabelValues(kind, "error").Inc()
		return Result{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		payloadsSent.WithLabelValues(kind, "error").Inc()
		return Result{}, fmt.Errorf("build %s request: %w", kind, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if e.config.APIKey != "" {
		req.Header.Set("X-API-Key", e.config.APIKey)
	}
	if e.config.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.config.BearerToken)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		payloadsSent.WithLabelValues(kind, "error").Inc()
		return Result{}, fmt.Errorf("send %s: %w", kind, err)
	}
	defer resp.Body.Close()

	sendLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	bytesSent.WithLabelValues(kind).Add(float64(len(body)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payloadsSent.WithLabelValues(kind, "rejected").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Result{StatusCode: resp.StatusCode, Bytes: len(body)},
			&StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(detail))}
	}

	payloadsSent.WithLabelValues(kind, "success").Inc()
	e.logger.Info("Sent payload",
		zap.String("type", kind),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	return Result{StatusCode: resp.StatusCode, Bytes: len(body)}, nil
}
