package otel

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ygrebnov/summary"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil summary source")
)

// Source is the summary being exported. *summary.Summary implements it.
type Source interface {
	Name() string
	Help() string
	Snapshot() summary.FamilySnapshot
}

type Exporter struct {
	source       Source
	registration metric.Registration
	quantile     metric.Float64ObservableGauge
	count        metric.Float64ObservableCounter
	sum          metric.Float64ObservableCounter
}

func NewExporter(meter metric.Meter, source Source) (*Exporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	name := source.Name()
	e := &Exporter{source: source}

	var err error
	e.quantile, err = meter.Float64ObservableGauge(name, metric.WithDescription(source.Help()))
	if err != nil {
		return nil, fmt.Errorf("create quantile gauge %s: %w", name, err)
	}
	e.count, err = meter.Float64ObservableCounter(name+"_count", metric.WithDescription("Number of observations."))
	if err != nil {
		return nil, fmt.Errorf("create count counter %s_count: %w", name, err)
	}
	e.sum, err = meter.Float64ObservableCounter(name+"_sum", metric.WithDescription("Sum of observations."))
	if err != nil {
		return nil, fmt.Errorf("create sum counter %s_sum: %w", name, err)
	}

	e.registration, err = meter.RegisterCallback(e.observe, e.quantile, e.count, e.sum)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	return e, nil
}

func (e *Exporter) observe(_ context.Context, observer metric.Observer) error {
	fs := e.source.Snapshot()
	for _, child := range fs.Children {
		labels := make([]attribute.KeyValue, 0, len(fs.LabelNames)+1)
		for i, n := range fs.LabelNames {
			labels = append(labels, attribute.String(n, child.LabelValues[i]))
		}
		observer.ObserveFloat64(e.count, child.Value.Count, metric.WithAttributes(labels...))
		observer.ObserveFloat64(e.sum, child.Value.Sum, metric.WithAttributes(labels...))
		for _, q := range fs.Quantiles {
			attrs := append(slices.Clone(labels), attribute.String(summary.QuantileLabel, summary.FormatQuantile(q)))
			observer.ObserveFloat64(e.quantile, child.Value.MustQuantile(q), metric.WithAttributes(attrs...))
		}
	}
	return nil
}

func (e *Exporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
