package otlp

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// SeverityInfo is the OTLP severity number for INFO.
const SeverityInfo = 9

// SpanKindServer is the string enum name for server spans.
const SpanKindServer = "SPAN_KIND_SERVER"

// hostResource identifies the emitting host. Every probe envelope carries
// exactly this resource so downstream routing can key on host.name/host.region.
func hostResource(hostName, hostRegion string) Resource {
	return Resource{
		Attributes: []KeyValue{
			String("host.name", hostName),
			String("host.region", hostRegion),
		},
	}
}

// LogEnvelope builds a single-record log payload. The message is carried
// verbatim as the record body; no validation is applied.
func LogEnvelope(hostName, hostRegion, message string, now time.Time) LogsPayload {
	return LogsPayload{
		ResourceLogs: []ResourceLogs{
			{
				Resource: hostResource(hostName, hostRegion),
				ScopeLogs: []ScopeLogs{
					{
						LogRecords: []LogRecord{
							{
								TimeUnixNano:   uint64(now.UnixNano()),
								Body:           AnyValue{StringValue: message},
								SeverityText:   "INFO",
								SeverityNumber: SeverityInfo,
							},
						},
					},
				},
			},
		},
	}
}

// GaugeEnvelope builds a metrics payload with one gauge data point carrying
// the given value.
func GaugeEnvelope(hostName, hostRegion string, value float64, now time.Time) MetricsPayload {
	return MetricsPayload{
		ResourceMetrics: []ResourceMetrics{
			{
				Resource: hostResource(hostName, hostRegion),
				ScopeMetrics: []ScopeMetrics{
					{
						Metrics: []Metric{
							{
								Name:        "my_gauge_metric",
								Description: "A test gauge metric",
								Unit:        "1",
								Gauge: &Gauge{
									DataPoints: []NumberDataPoint{
										{
											TimeUnixNano: uint64(now.UnixNano()),
											Value:        &value,
											Attributes: []KeyValue{
												String("metric.attribute", "example"),
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// SpanEnvelope builds a traces payload with one server span covering the
// second leading up to now. Trace and span identifiers are fresh random
// 128-bit and 64-bit values, hex-encoded.
func SpanEnvelope(hostName, hostRegion, spanName string, now time.Time) TracesPayload {
	end := uint64(now.UnixNano())
	start := end - uint64(time.Second)

	return TracesPayload{
		ResourceSpans: []ResourceSpans{
			{
				Resource: hostResource(hostName, hostRegion),
				ScopeSpans: []ScopeSpans{
					{
						Spans: []Span{
							{
								TraceID:           NewTraceID(),
								SpanID:            NewSpanID(),
								Name:              spanName,
								Kind:              SpanKindServer,
								StartTimeUnixNano: start,
								EndTimeUnixNano:   end,
								Attributes: []KeyValue{
									String("http.method", "GET"),
									Int("http.status_code", 200),
								},
							},
						},
					},
				},
			},
		},
	}
}

// NewTraceID returns a random 128-bit trace identifier as 32 hex characters.
func NewTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// NewSpanID returns a random 64-bit span identifier as 16 hex characters.
func NewSpanID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:8])
}
