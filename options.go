package summary

import (
	"github.com/coder/quartz"
	"github.com/go-kit/log"
)

// QuantileLabel is the label name reserved for quantile samples.
const QuantileLabel = "quantile"

// DefaultQuantiles are used when no quantiles are configured.
var DefaultQuantiles = []float64{0.5, 0.95, 0.98, 0.99, 0.999}

// Opts describes a Summary. It can be populated by Options or decoded from
// YAML with LoadOpts.
type Opts struct {
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
	Name      string `yaml:"name"`
	Help      string `yaml:"help"`

	LabelNames []string `yaml:"label_names"`

	// Quantiles to report. nil selects DefaultQuantiles, an empty non-nil
	// slice disables quantile samples.
	Quantiles []float64 `yaml:"quantiles"`

	// ReservoirSize is the per-child sample capacity. nil selects
	// reservoir.DefaultSize.
	ReservoirSize *int `yaml:"reservoir_size"`

	Clock  quartz.Clock `yaml:"-"`
	Logger log.Logger   `yaml:"-"`
}

// Option mutates Opts.
type Option func(*Opts)

// WithNamespace sets the first component of the full metric name.
func WithNamespace(ns string) Option {
	return func(o *Opts) { o.Namespace = ns }
}

// WithSubsystem sets the middle component of the full metric name.
func WithSubsystem(sub string) Option {
	return func(o *Opts) { o.Subsystem = sub }
}

// WithHelp sets the help text.
func WithHelp(help string) Option {
	return func(o *Opts) { o.Help = help }
}

// WithLabelNames sets the label dimensions. The slice is copied.
func WithLabelNames(names ...string) Option {
	return func(o *Opts) { o.LabelNames = append([]string(nil), names...) }
}

// WithQuantiles sets the quantiles to report, in order. Calling it without
// arguments disables quantile samples.
func WithQuantiles(qs ...float64) Option {
	return func(o *Opts) { o.Quantiles = append(make([]float64, 0, len(qs)), qs...) }
}

// WithReservoirSize sets the number of samples kept per child.
func WithReservoirSize(n int) Option {
	return func(o *Opts) { o.ReservoirSize = &n }
}

// WithClock replaces the clock used by timers. Tests typically pass a
// quartz.Mock.
func WithClock(c quartz.Clock) Option {
	return func(o *Opts) { o.Clock = c }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l log.Logger) Option {
	return func(o *Opts) { o.Logger = l }
}

func applyOptions(o *Opts, opts []Option) {
	for _, fn := range opts {
		if fn != nil {
			fn(o)
		}
	}
}

// fullName joins the non-empty name components with underscores.
func (o Opts) fullName() string {
	name := o.Name
	if o.Subsystem != "" {
		name = o.Subsystem + "_" + name
	}
	if o.Namespace != "" {
		name = o.Namespace + "_" + name
	}
	return name
}

// Options converts o into options, for example to pass a loaded config to
// Provider.Summary together with o.Name. Zero fields produce no option.
func (o Opts) Options() []Option {
	var opts []Option
	if o.Namespace != "" {
		opts = append(opts, WithNamespace(o.Namespace))
	}
	if o.Subsystem != "" {
		opts = append(opts, WithSubsystem(o.Subsystem))
	}
	if o.Help != "" {
		opts = append(opts, WithHelp(o.Help))
	}
	if o.LabelNames != nil {
		opts = append(opts, WithLabelNames(o.LabelNames...))
	}
	if o.Quantiles != nil {
		opts = append(opts, WithQuantiles(o.Quantiles...))
	}
	if o.ReservoirSize != nil {
		opts = append(opts, WithReservoirSize(*o.ReservoirSize))
	}
	if o.Clock != nil {
		opts = append(opts, WithClock(o.Clock))
	}
	if o.Logger != nil {
		opts = append(opts, WithLogger(o.Logger))
	}
	return opts
}
