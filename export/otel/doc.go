// Package otel exports a summary through OpenTelemetry metric instruments.
//
// [NewExporter] registers a Float64ObservableGauge for the quantile estimates
// (attribute "quantile") and Float64ObservableCounters for <name>_count and
// <name>_sum. A single callback reads one summary snapshot per collection
// cycle, so the three instruments always agree with each other.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate summary state.
package otel
