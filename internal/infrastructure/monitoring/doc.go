// Package monitoring provides Prometheus metrics for the HTTP layer and the
// filesystem operations behind it: request counters and latency histograms,
// per-operation counts and failure kinds, and byte throughput.
package monitoring
