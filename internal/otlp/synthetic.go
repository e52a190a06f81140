package otlp

import "time"

// schemaURL tags the synthetic payloads with the semconv version their
// attribute names were taken from.
const schemaURL = "https://opentelemetry.io/schemas/1.17.0"

// syntheticStartOffset is how far the cumulative sums in the synthetic
// payloads claim to reach back.
const syntheticStartOffset = 5 * time.Second

func asInt(v int64) *int64 { return &v }

// GoRuntimeMetrics builds a fixed payload shaped like the Go runtime
// instrumentation's export: memory, allocation, goroutine and scheduler
// metrics. Only the two timestamps are computed; every value is canned.
func GoRuntimeMetrics(now time.Time) MetricsPayload {
	ts := uint64(now.UnixNano())
	start := uint64(now.Add(-syntheticStartOffset).UnixNano())

	return MetricsPayload{
		ResourceMetrics: []ResourceMetrics{
			{
				Resource: Resource{
					Attributes: []KeyValue{
						String("host.name", "hostname2"),
						String("os.name", "linux"),
						String("service.name", "tracksreceiver"),
						String("service.version", "devtest"),
					},
				},
				ScopeMetrics: []ScopeMetrics{
					{
						Scope: &Scope{
							Name:    "go.opentelemetry.io/contrib/instrumentation/runtime",
							Version: "0.62.0",
						},
						Metrics: []Metric{
							{
								Name:        "go.memory.used",
								Description: "Memory used by the Go runtime.",
								Unit:        "By",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{
											Attributes:        []KeyValue{String("go.memory.type", "stack")},
											StartTimeUnixNano: start,
											TimeUnixNano:      ts,
											AsInt:             asInt(589824),
										},
										{
											Attributes:        []KeyValue{String("go.memory.type", "other")},
											StartTimeUnixNano: start,
											TimeUnixNano:      ts,
											AsInt:             asInt(10378256),
										},
									},
									AggregationTemporality: TemporalityCumulative,
								},
							},
							{
								Name:        "go.memory.allocated",
								Description: "Memory allocated to the heap by the application.",
								Unit:        "By",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{StartTimeUnixNano: start, TimeUnixNano: ts, AsInt: asInt(9453656)},
									},
									AggregationTemporality: TemporalityCumulative,
									IsMonotonic:            true,
								},
							},
							{
								Name:        "go.memory.allocations",
								Description: "Count of allocations to the heap by the application.",
								Unit:        "{allocation}",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{StartTimeUnixNano: start, TimeUnixNano: ts, AsInt: asInt(50553)},
									},
									AggregationTemporality: TemporalityCumulative,
									IsMonotonic:            true,
								},
							},
							{
								Name:        "go.memory.gc.goal",
								Description: "Heap size target for the end of the GC cycle.",
								Unit:        "By",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{StartTimeUnixNano: start, TimeUnixNano: ts, AsInt: asInt(5605112)},
									},
									AggregationTemporality: TemporalityCumulative,
								},
							},
							{
								Name:        "go.goroutine.count",
								Description: "Count of live goroutines.",
								Unit:        "{goroutine}",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{StartTimeUnixNano: start, TimeUnixNano: ts, AsInt: asInt(22)},
									},
									AggregationTemporality: TemporalityCumulative,
								},
							},
							{
								Name:        "go.processor.limit",
								Description: "The number of OS threads that can execute user-level Go code simultaneously.",
								Unit:        "{thread}",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{StartTimeUnixNano: start, TimeUnixNano: ts, AsInt: asInt(2)},
									},
									AggregationTemporality: TemporalityCumulative,
								},
							},
							{
								Name:        "go.config.gogc",
								Description: "Heap size target percentage configured by the user, otherwise 100.",
								Unit:        "%",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{StartTimeUnixNano: start, TimeUnixNano: ts, AsInt: asInt(100)},
									},
									AggregationTemporality: TemporalityCumulative,
								},
							},
						},
					},
				},
				SchemaURL: schemaURL,
			},
		},
	}
}

// RedisMetrics builds a fixed payload shaped like a Redis receiver's export:
// a single replication-offset gauge from a canned cache host.
func RedisMetrics(now time.Time) MetricsPayload {
	ts := uint64(now.UnixNano())
	start := uint64(now.Add(-syntheticStartOffset).UnixNano())

	return MetricsPayload{
		ResourceMetrics: []ResourceMetrics{
			{
				Resource: Resource{
					Attributes: []KeyValue{
						String("host.name", "redis-server-01"),
						String("service.name", "redis"),
						String("service.version", "7.0.0"),
					},
				},
				ScopeMetrics: []ScopeMetrics{
					{
						Scope: &Scope{Name: "redis", Version: "1.0.0"},
						Metrics: []Metric{
							{
								Name:        "redis.replication.offset",
								Description: "The server's current replication offset",
								Unit:        "By",
								Gauge: &Gauge{
									DataPoints: []NumberDataPoint{
										{StartTimeUnixNano: start, TimeUnixNano: ts, AsInt: asInt(0)},
									},
								},
							},
						},
					},
				},
				SchemaURL: schemaURL,
			},
		},
	}
}

// DatabaseMetrics builds a fixed payload shaped like a database receiver's
// export: an active-connection sum from a canned postgres host.
func DatabaseMetrics(now time.Time) MetricsPayload {
	ts := uint64(now.UnixNano())
	start := uint64(now.Add(-syntheticStartOffset).UnixNano())

	return MetricsPayload{
		ResourceMetrics: []ResourceMetrics{
			{
				Resource: Resource{
					Attributes: []KeyValue{
						String("host.name", "db-server-01"),
						String("service.name", "database"),
						String("service.version", "postgres-15"),
					},
				},
				ScopeMetrics: []ScopeMetrics{
					{
						Scope: &Scope{Name: "database", Version: "1.0.0"},
						Metrics: []Metric{
							{
								Name:        "active.connections",
								Description: "Number of active database connections",
								Unit:        "{connection}",
								Sum: &Sum{
									DataPoints: []NumberDataPoint{
										{
											Attributes:        []KeyValue{String("db.name", "userdb")},
											StartTimeUnixNano: start,
											TimeUnixNano:      ts,
											AsInt:             asInt(25),
										},
									},
									AggregationTemporality: TemporalityCumulative,
								},
							},
						},
					},
				},
				SchemaURL: schemaURL,
			},
		},
	}
}
