package emitter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ollystack/otlp-probe/internal/otlp"
)

func TestSend_Success(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	core, logs := observer.New(zap.InfoLevel)
	e := New(Config{}, zap.New(core))

	payload := otlp.LogEnvelope("test-host-01", "eu-west-1", "hello", time.Now())
	res, err := e.Send(context.Background(), srv.URL, "log", payload)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
	if res.Bytes == 0 {
		t.Error("result reports zero bytes sent")
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if _, ok := gotBody["resourceLogs"]; !ok {
		t.Errorf("body missing resourceLogs envelope: %v", gotBody)
	}

	if n := logs.FilterMessage("Sent payload").Len(); n != 1 {
		t.Errorf("expected one success log line, got %d", n)
	}
}

func TestSend_AuthHeaders(t *testing.T) {
	var gotAPIKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-API-Key")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := New(Config{APIKey: "key-123", BearerToken: "tok-456"}, zap.NewNop())
	if _, err := e.Send(context.Background(), srv.URL, "log", map[string]any{}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotAPIKey != "key-123" {
		t.Errorf("X-API-Key = %q", gotAPIKey)
	}
	if gotAuth != "Bearer tok-456" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestSend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pipeline unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	core, logs := observer.New(zap.InfoLevel)
	e := New(Config{}, zap.New(core))

	res, err := e.Send(context.Background(), srv.URL, "metric", map[string]any{})
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error is %T, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", statusErr.StatusCode)
	}
	if statusErr.Body != "pipeline unavailable" {
		t.Errorf("error body = %q", statusErr.Body)
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Errorf("result status = %d, want 500", res.StatusCode)
	}

	// No success line may be reported for a rejected payload
	if n := logs.FilterMessage("Sent payload").Len(); n != 0 {
		t.Errorf("success log line emitted on failure, got %d entries", n)
	}
}

func TestSend_ConnectionFailure(t *testing.T) {
	// Grab an address that refuses connections
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	e := New(Config{Timeout: time.Second}, zap.NewNop())
	_, err := e.Send(context.Background(), url, "log", map[string]any{})
	if err == nil {
		t.Fatal("expected transport error")
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("connection failure reported as status error: %v", err)
	}
}

func TestSend_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(Config{}, zap.NewNop())
	if _, err := e.Send(ctx, srv.URL, "log", map[string]any{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
