/*
Package summary provides a concurrency-safe Summary metric for Go: it tracks the count
and sum of observed values and estimates configured quantiles from a bounded, uniformly
random sample of them.

# Overview

The package is organized around three pieces:

1. Summary: a metric family. A Summary without label names has a single child that is
observed directly; a Summary with label names lazily creates one child per distinct
combination of label values.

	s := summary.MustNew("request_seconds", summary.WithQuantiles(0.5, 0.99))
	s.Observe(0.12)

2. Provider: creation and lifecycle management of summaries. Providers are safe for
concurrent use, create summaries lazily and deduplicate them by full name
(namespace_subsystem_name).

	type Provider interface {
	  Summary(name string, opts ...Option) (*Summary, error)
	}

3. Inspector: read-only access to summaries and a defensive copy of their metadata.

	type Inspector interface {
	  SummaryWithMeta(name string) (*Summary, Metadata, bool)
	  ListMetadata() []Entry
	}

# How it works (high level)

 1. Observe updates the child's count, its sum and its reservoir independently. Count and
    sum are lock-free; the reservoir is guarded by its own mutex.
 2. The reservoir keeps at most ReservoirSize values (1028 by default). Once full, the
    i-th observation replaces a random slot with probability size/i.
 3. At collection time the reservoir is copied and sorted, and each quantile φ is
    estimated at position φ(n+1) with linear interpolation between neighbours. φ=0
    yields the minimum and φ=1 the maximum of the sample.
 4. Collect renders one sample per quantile (labelled quantile="φ"), followed by
    <name>_count and <name>_sum for every child.

Timers measure elapsed wall time with the configured clock and observe it in seconds:

	t := s.StartTimer()
	doWork()
	t.ObserveDuration()

# Exporters

Package export/prometheus adapts summaries and providers to prometheus.Collector;
package export/otel reports them through OpenTelemetry observable instruments.

# Build and test

- Run unit tests:

	go test ./...

- Run with the race detector (enables stricter invariant behavior):

	go test -race ./...

- Enable debug build tag (debug invariants enabled):

	go test -tags=debug ./...

# Notes

- Count, sum and the sample are read independently, so a snapshot taken during
concurrent observation may be off by the observations in flight.

- Metadata returned by Inspector methods are defensive copies.

- Per-key init mutex entries are removed by default after initialization. Disable this
behavior with summary.WithInitCleanupDisabled().
*/
package summary
