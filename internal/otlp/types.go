// Package otlp builds OTLP/HTTP JSON payloads for logs, metrics and traces.
//
// The payloads follow the protobuf-JSON mapping the collector's OTLP/HTTP
// receiver accepts: 64-bit nanosecond timestamps are decimal strings, enum
// span kinds are string names and attribute values are tagged unions.
package otlp

// AnyValue is the tagged-union attribute value. Exactly one field is set.
type AnyValue struct {
	StringValue string `json:"stringValue,omitempty"`
	IntValue    *int64 `json:"intValue,omitempty"`
}

// KeyValue is a single attribute.
type KeyValue struct {
	Key   string   `json:"key"`
	Value AnyValue `json:"value"`
}

// String builds a string-valued attribute.
func String(key, value string) KeyValue {
	return KeyValue{Key: key, Value: AnyValue{StringValue: value}}
}

// Int builds an integer-valued attribute.
func Int(key string, value int64) KeyValue {
	return KeyValue{Key: key, Value: AnyValue{IntValue: &value}}
}

// Resource identifies the entity that produced the telemetry.
type Resource struct {
	Attributes []KeyValue `json:"attributes"`
}

// Scope identifies the instrumentation library that recorded a batch.
type Scope struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ===== Logs =====

// LogsPayload is the top-level envelope POSTed to /v1/logs.
type LogsPayload struct {
	ResourceLogs []ResourceLogs `json:"resourceLogs"`
}

// ResourceLogs groups log records under one resource.
type ResourceLogs struct {
	Resource  Resource    `json:"resource"`
	ScopeLogs []ScopeLogs `json:"scopeLogs"`
}

// ScopeLogs groups log records under one instrumentation scope.
type ScopeLogs struct {
	Scope      *Scope      `json:"scope,omitempty"`
	LogRecords []LogRecord `json:"logRecords"`
}

// LogRecord is a single log entry.
type LogRecord struct {
	TimeUnixNano   uint64   `json:"timeUnixNano,string"`
	Body           AnyValue `json:"body"`
	SeverityText   string   `json:"severityText"`
	SeverityNumber int      `json:"severityNumber"`
}

// ===== Metrics =====

// MetricsPayload is the top-level envelope POSTed to /v1/metrics.
type MetricsPayload struct {
	ResourceMetrics []ResourceMetrics `json:"resourceMetrics"`
}

// ResourceMetrics groups metrics under one resource.
type ResourceMetrics struct {
	Resource     Resource       `json:"resource"`
	ScopeMetrics []ScopeMetrics `json:"scopeMetrics"`
	SchemaURL    string         `json:"schemaUrl,omitempty"`
}

// ScopeMetrics groups metrics under one instrumentation scope.
type ScopeMetrics struct {
	Scope   *Scope   `json:"scope,omitempty"`
	Metrics []Metric `json:"metrics"`
}

// Metric carries either a gauge or a sum, never both.
type Metric struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Gauge       *Gauge `json:"gauge,omitempty"`
	Sum         *Sum   `json:"sum,omitempty"`
}

// Gauge reports instantaneous values.
type Gauge struct {
	DataPoints []NumberDataPoint `json:"dataPoints"`
}

// Aggregation temporality codes from the OTLP metrics proto.
const (
	TemporalityDelta      = 1
	TemporalityCumulative = 2
)

// Sum is an accumulating metric with an explicit temporality.
type Sum struct {
	DataPoints             []NumberDataPoint `json:"dataPoints"`
	AggregationTemporality int               `json:"aggregationTemporality"`
	IsMonotonic            bool              `json:"isMonotonic,omitempty"`
}

// NumberDataPoint is one sample of a gauge or sum. Value and AsInt are
// alternatives; the synthetic fixtures use AsInt, the probe gauge uses Value.
type NumberDataPoint struct {
	Attributes        []KeyValue `json:"attributes,omitempty"`
	StartTimeUnixNano uint64     `json:"startTimeUnixNano,string,omitempty"`
	TimeUnixNano      uint64     `json:"timeUnixNano,string"`
	Value             *float64   `json:"value,omitempty"`
	AsInt             *int64     `json:"asInt,string,omitempty"`
}

// ===== Traces =====

// TracesPayload is the top-level envelope POSTed to /v1/traces.
type TracesPayload struct {
	ResourceSpans []ResourceSpans `json:"resourceSpans"`
}

// ResourceSpans groups spans under one resource.
type ResourceSpans struct {
	Resource   Resource     `json:"resource"`
	ScopeSpans []ScopeSpans `json:"scopeSpans"`
}

// ScopeSpans groups spans under one instrumentation scope.
type ScopeSpans struct {
	Scope *Scope `json:"scope,omitempty"`
	Spans []Span `json:"spans"`
}

// Span is a single trace span with hex-encoded identifiers.
type Span struct {
	TraceID           string     `json:"traceId"`
	SpanID            string     `json:"spanId"`
	Name              string     `json:"name"`
	Kind              string     `json:"kind"`
	StartTimeUnixNano uint64     `json:"startTimeUnixNano,string"`
	EndTimeUnixNano   uint64     `json:"endTimeUnixNano,string"`
	Attributes        []KeyValue `json:"attributes,omitempty"`
}
