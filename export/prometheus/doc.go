// Package prometheus exposes summaries through the Prometheus client library.
//
// [NewCollector] wraps a [Source], either a single [summary.Summary] or a
// [summary.BasicProvider], in a prometheus.Collector that emits one constant
// summary per child on every scrape. [Handler] and [WriteText] render any
// prometheus.Gatherer in the text exposition format.
//
// # What this package must NOT do
//
//   - Register anything in the global Prometheus registry; callers register the Collector.
//   - Mutate summary state.
package prometheus
