package prometheus

import (
	"errors"
	"io"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/ygrebnov/summary"
)

// ErrNilSource is returned by NewCollector for a nil source.
var ErrNilSource = errors.New("nil summary source")

// Source yields the families to export. *summary.Summary and
// *summary.BasicProvider implement it.
type Source interface {
	Snapshots() []summary.FamilySnapshot
}

// Collector is an unchecked prometheus.Collector: the set of summaries
// behind a Source may change between scrapes, so Describe sends nothing.
type Collector struct {
	source Source
}

// NewCollector returns a Collector reading from source.
func NewCollector(source Source) (*Collector, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	return &Collector{source: source}, nil
}

// MustNewCollector is like NewCollector but panics on error.
func MustNewCollector(source Source) *Collector {
	c, err := NewCollector(source)
	if err != nil {
		panic(err)
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(chan<- *prom.Desc) {}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prom.Metric) {
	for _, fs := range c.source.Snapshots() {
		desc := prom.NewDesc(fs.Name, fs.Help, fs.LabelNames, nil)
		for _, child := range fs.Children {
			quantiles := make(map[float64]float64, len(fs.Quantiles))
			for _, q := range fs.Quantiles {
				quantiles[q] = child.Value.MustQuantile(q)
			}
			m, err := prom.NewConstSummary(desc, uint64(child.Value.Count), child.Value.Sum, quantiles, child.LabelValues...)
			if err != nil {
				ch <- prom.NewInvalidMetric(desc, err)
				continue
			}
			ch <- m
		}
	}
}

// Handler serves g in the Prometheus exposition formats.
func Handler(g prom.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// WriteText gathers g and writes every family to w in the text format.
func WriteText(w io.Writer, g prom.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
