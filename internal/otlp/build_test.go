package otlp

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestLogEnvelope(t *testing.T) {
	now := time.Now()
	p := LogEnvelope("test-host-01", "eu-west-1", "hello", now)

	if len(p.ResourceLogs) != 1 {
		t.Fatalf("expected 1 resourceLogs entry, got %d", len(p.ResourceLogs))
	}
	rl := p.ResourceLogs[0]

	attrs := rl.Resource.Attributes
	if len(attrs) != 2 {
		t.Fatalf("expected 2 resource attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "host.name" || attrs[0].Value.StringValue != "test-host-01" {
		t.Errorf("unexpected host.name attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "host.region" || attrs[1].Value.StringValue != "eu-west-1" {
		t.Errorf("unexpected host.region attribute: %+v", attrs[1])
	}

	if len(rl.ScopeLogs) != 1 || len(rl.ScopeLogs[0].LogRecords) != 1 {
		t.Fatalf("expected exactly one scope group with one record, got %+v", rl.ScopeLogs)
	}
	rec := rl.ScopeLogs[0].LogRecords[0]
	if rec.Body.StringValue != "hello" {
		t.Errorf("body = %q, want %q", rec.Body.StringValue, "hello")
	}
	if rec.SeverityText != "INFO" || rec.SeverityNumber != 9 {
		t.Errorf("severity = %s/%d, want INFO/9", rec.SeverityText, rec.SeverityNumber)
	}
	if rec.TimeUnixNano != uint64(now.UnixNano()) {
		t.Errorf("timeUnixNano = %d, want %d", rec.TimeUnixNano, now.UnixNano())
	}
}

func TestGaugeEnvelope_ValueSurvivesRoundTrip(t *testing.T) {
	p := GaugeEnvelope("test-host-01", "eu-west-1", 42.5, time.Now())

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded MetricsPayload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	m := decoded.ResourceMetrics[0].ScopeMetrics[0].Metrics[0]
	if m.Name != "my_gauge_metric" || m.Unit != "1" {
		t.Errorf("metric identity = %s/%s, want my_gauge_metric/1", m.Name, m.Unit)
	}
	if m.Gauge == nil || len(m.Gauge.DataPoints) != 1 {
		t.Fatalf("expected one gauge data point, got %+v", m.Gauge)
	}
	dp := m.Gauge.DataPoints[0]
	if dp.Value == nil || *dp.Value != 42.5 {
		t.Errorf("gauge value = %v, want exactly 42.5", dp.Value)
	}
	if len(dp.Attributes) != 1 || dp.Attributes[0].Key != "metric.attribute" {
		t.Errorf("unexpected data point attributes: %+v", dp.Attributes)
	}
}

func TestSpanEnvelope(t *testing.T) {
	now := time.Now()
	p := SpanEnvelope("test-host-01", "eu-west-1", "my-service-operation", now)

	span := p.ResourceSpans[0].ScopeSpans[0].Spans[0]

	if len(span.TraceID) != 32 {
		t.Errorf("traceId length = %d, want 32", len(span.TraceID))
	}
	if len(span.SpanID) != 16 {
		t.Errorf("spanId length = %d, want 16", len(span.SpanID))
	}
	if _, err := hex.DecodeString(span.TraceID); err != nil {
		t.Errorf("traceId is not hex: %v", err)
	}
	if _, err := hex.DecodeString(span.SpanID); err != nil {
		t.Errorf("spanId is not hex: %v", err)
	}

	if span.Kind != "SPAN_KIND_SERVER" {
		t.Errorf("kind = %q, want SPAN_KIND_SERVER", span.Kind)
	}
	if span.Name != "my-service-operation" {
		t.Errorf("name = %q", span.Name)
	}

	if got := span.EndTimeUnixNano - span.StartTimeUnixNano; got != uint64(time.Second) {
		t.Errorf("span duration = %dns, want exactly 1000000000ns", got)
	}
	if span.EndTimeUnixNano != uint64(now.UnixNano()) {
		t.Errorf("endTimeUnixNano = %d, want %d", span.EndTimeUnixNano, now.UnixNano())
	}

	if len(span.Attributes) != 2 {
		t.Fatalf("expected 2 span attributes, got %d", len(span.Attributes))
	}
	if span.Attributes[0].Value.StringValue != "GET" {
		t.Errorf("http.method = %+v", span.Attributes[0].Value)
	}
	if span.Attributes[1].Value.IntValue == nil || *span.Attributes[1].Value.IntValue != 200 {
		t.Errorf("http.status_code = %+v", span.Attributes[1].Value)
	}
}

func TestIdentifiersAreFresh(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTraceID()
		if seen[id] {
			t.Fatalf("duplicate trace id after %d draws: %s", i, id)
		}
		seen[id] = true
	}
}

// Every *UnixNano field must serialize as a decimal string, never as a JSON
// number, across all payload builders.
func TestTimestampsSerializeAsStrings(t *testing.T) {
	now := time.Now()

	payloads := map[string]any{
		"log":      LogEnvelope("h", "r", "m", now),
		"gauge":    GaugeEnvelope("h", "r", 1.0, now),
		"trace":    SpanEnvelope("h", "r", "s", now),
		"runtime":  GoRuntimeMetrics(now),
		"redis":    RedisMetrics(now),
		"database": DatabaseMetrics(now),
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(payload)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}

			var decoded any
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			checkNanoFields(t, decoded, "$")
		})
	}
}

func checkNanoFields(t *testing.T, v any, path string) {
	t.Helper()
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			if strings.HasSuffix(k, "UnixNano") {
				s, ok := val.(string)
				if !ok {
					t.Errorf("%s.%s serialized as %T, want decimal string", path, k, val)
					continue
				}
				if _, err := strconv.ParseUint(s, 10, 64); err != nil {
					t.Errorf("%s.%s = %q is not a decimal integer", path, k, s)
				}
				continue
			}
			checkNanoFields(t, val, path+"."+k)
		}
	case []any:
		for i, val := range x {
			checkNanoFields(t, val, path+"["+strconv.Itoa(i)+"]")
		}
	}
}
