// Package observability exposes scheduler lifecycle activity as Prometheus
// metrics. It adapts domain.LifecycleHooks onto counters and gauges so the
// embedding application can scrape scheduler health without touching the
// core.
package observability
