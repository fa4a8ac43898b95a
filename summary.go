package summary

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/coder/quartz"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/ygrebnov/summary/internal/reservoir"
)

// Summary tracks the distribution of observed values, such as request
// latencies or sizes, per label-value combination. It reports a count, a sum
// and a configured set of quantile estimates computed over a uniform sample.
//
// All methods are safe for concurrent use.
type Summary struct {
	name       string
	help       string
	labelNames []string
	quantiles  []float64
	size       int
	clock      quartz.Clock
	logger     log.Logger

	// noLabels is nil for summaries with label names.
	noLabels atomic.Pointer[Child]

	mtx      sync.RWMutex
	children map[uint64][]labeledChild
}

type labeledChild struct {
	values []string
	child  *Child
}

// New builds a Summary called name. The full name is prefixed with the
// namespace and subsystem, if set.
func New(name string, opts ...Option) (*Summary, error) {
	o := Opts{Name: name}
	applyOptions(&o, opts)
	return NewFromOpts(o)
}

// MustNew is like New but panics on invalid configuration.
func MustNew(name string, opts ...Option) *Summary {
	s, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewFromOpts builds a Summary from o. It never returns a Summary together
// with an error.
func NewFromOpts(o Opts) (*Summary, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	s := &Summary{
		name:       o.fullName(),
		help:       o.Help,
		labelNames: slices.Clone(o.LabelNames),
		quantiles:  DefaultQuantiles,
		size:       reservoir.DefaultSize,
		clock:      o.Clock,
		logger:     o.Logger,
		children:   make(map[uint64][]labeledChild),
	}
	if o.Quantiles != nil {
		s.quantiles = o.Quantiles
	}
	s.quantiles = slices.Clone(s.quantiles)
	if o.ReservoirSize != nil {
		s.size = *o.ReservoirSize
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.logger == nil {
		s.logger = log.NewNopLogger()
	}
	s.initNoLabels()
	return s, nil
}

func (o Opts) validate() error {
	if o.Name == "" {
		return ErrEmptyName
	}
	for _, q := range o.Quantiles {
		if !validQuantile(q) {
			return errors.Wrapf(ErrInvalidQuantile, "summary %s: got %v", o.fullName(), q)
		}
	}
	seen := make(map[string]struct{}, len(o.LabelNames))
	for _, l := range o.LabelNames {
		if l == QuantileLabel {
			return errors.Wrapf(ErrReservedLabel, "summary %s", o.fullName())
		}
		if _, ok := seen[l]; ok {
			return errors.Wrapf(ErrDuplicateLabel, "summary %s: %q", o.fullName(), l)
		}
		seen[l] = struct{}{}
	}
	if o.ReservoirSize != nil && *o.ReservoirSize < 0 {
		return errors.Wrapf(ErrInvalidReservoirSize, "summary %s: got %d", o.fullName(), *o.ReservoirSize)
	}
	return nil
}

// newChild is the factory used for every new label-value combination.
func (s *Summary) newChild() *Child {
	return newChild(s.size, s.clock)
}

// initNoLabels creates the child of a label-less summary. Callers must hold
// s.mtx or own s exclusively.
func (s *Summary) initNoLabels() {
	if len(s.labelNames) != 0 {
		return
	}
	c := s.newChild()
	s.children[hashLabelValues(nil)] = []labeledChild{{child: c}}
	s.noLabels.Store(c)
}

// Name returns the full metric name.
func (s *Summary) Name() string { return s.name }

// Help returns the help text.
func (s *Summary) Help() string { return s.help }

// LabelNames returns a copy of the label names.
func (s *Summary) LabelNames() []string { return slices.Clone(s.labelNames) }

// Quantiles returns a copy of the configured quantiles.
func (s *Summary) Quantiles() []float64 { return slices.Clone(s.quantiles) }

// ReservoirSize returns the per-child sample capacity.
func (s *Summary) ReservoirSize() int { return s.size }

// Observe records v on the label-less child.
// It panics if the summary has label names.
func (s *Summary) Observe(v float64) {
	s.unlabelled().Observe(v)
}

// StartTimer starts a timer on the label-less child.
// It panics if the summary has label names.
func (s *Summary) StartTimer() *Timer {
	return s.unlabelled().StartTimer()
}

// Time runs f and observes its duration in seconds on the label-less child.
func (s *Summary) Time(f func()) (elapsed float64) {
	t := s.StartTimer()
	defer func() { elapsed = t.ObserveDuration() }()
	f()
	return
}

func (s *Summary) unlabelled() *Child {
	c := s.noLabels.Load()
	if c == nil {
		panic(errors.Wrapf(ErrInconsistentCardinality, "summary %s has label names %v; use With", s.name, s.labelNames))
	}
	return c
}

// With returns the child for the given label values, creating it on first
// use. Values are matched to label names by position.
func (s *Summary) With(values ...string) (*Child, error) {
	if err := s.checkCardinality(values); err != nil {
		return nil, err
	}
	h := hashLabelValues(values)

	s.mtx.RLock()
	c := s.lookup(h, values)
	s.mtx.RUnlock()
	if c != nil {
		return c, nil
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	// re-check: another goroutine may have created it meanwhile
	if c := s.lookup(h, values); c != nil {
		return c, nil
	}
	c = s.newChild()
	s.children[h] = append(s.children[h], labeledChild{values: slices.Clone(values), child: c})
	level.Debug(s.logger).Log("msg", "created summary child", "summary", s.name, "labels", strings.Join(values, ","))
	return c, nil
}

// MustWith is like With but panics on a label cardinality mismatch.
func (s *Summary) MustWith(values ...string) *Child {
	c, err := s.With(values...)
	if err != nil {
		panic(err)
	}
	return c
}

// Remove deletes the child for the given label values. It reports whether a
// child was removed. Removing the child of a label-less summary replaces it
// with a fresh one.
func (s *Summary) Remove(values ...string) bool {
	if s.checkCardinality(values) != nil {
		return false
	}
	h := hashLabelValues(values)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	bucket := s.children[h]
	for i, lc := range bucket {
		if !slices.Equal(lc.values, values) {
			continue
		}
		if len(bucket) == 1 {
			delete(s.children, h)
		} else {
			s.children[h] = slices.Delete(slices.Clone(bucket), i, i+1)
		}
		if lc.child == s.noLabels.Load() {
			s.initNoLabels()
		}
		level.Debug(s.logger).Log("msg", "removed summary child", "summary", s.name, "labels", strings.Join(values, ","))
		return true
	}
	return false
}

// Clear removes all children. A label-less summary gets a fresh child.
func (s *Summary) Clear() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.children = make(map[uint64][]labeledChild)
	// initNoLabels swaps the child in place; noLabels is never nil in between.
	s.initNoLabels()
	level.Debug(s.logger).Log("msg", "cleared summary children", "summary", s.name)
}

func (s *Summary) checkCardinality(values []string) error {
	if len(values) != len(s.labelNames) {
		return errors.Wrapf(ErrInconsistentCardinality, "summary %s: expected %d label values, got %d", s.name, len(s.labelNames), len(values))
	}
	return nil
}

// lookup must be called with s.mtx held.
func (s *Summary) lookup(h uint64, values []string) *Child {
	for _, lc := range s.children[h] {
		if slices.Equal(lc.values, values) {
			return lc.child
		}
	}
	return nil
}

// Snapshot reads every child. Child values are read outside the children
// lock so that collection never holds up label lookups for long.
func (s *Summary) Snapshot() FamilySnapshot {
	s.mtx.RLock()
	all := make([]labeledChild, 0, len(s.children))
	for _, bucket := range s.children {
		all = append(all, bucket...)
	}
	s.mtx.RUnlock()

	slices.SortFunc(all, func(a, b labeledChild) int {
		return slices.Compare(a.values, b.values)
	})

	fs := FamilySnapshot{
		Name:       s.name,
		Help:       s.help,
		LabelNames: slices.Clone(s.labelNames),
		Quantiles:  slices.Clone(s.quantiles),
		Children:   make([]ChildSnapshot, 0, len(all)),
	}
	for _, lc := range all {
		fs.Children = append(fs.Children, ChildSnapshot{
			LabelValues: slices.Clone(lc.values),
			Value:       lc.child.Get(),
		})
	}
	return fs
}

// Snapshots returns the single FamilySnapshot of s. It lets a Summary be
// used wherever a set of summaries is expected.
func (s *Summary) Snapshots() []FamilySnapshot {
	return []FamilySnapshot{s.Snapshot()}
}

// Collect renders the summary into samples: for every child the quantile
// samples in configured order, then <name>_count, then <name>_sum.
func (s *Summary) Collect() []MetricFamilySamples {
	return []MetricFamilySamples{s.Snapshot().Samples()}
}

// Samples renders fs the way Summary.Collect does.
func (fs FamilySnapshot) Samples() MetricFamilySamples {
	perChild := len(fs.Quantiles) + 2
	samples := make([]Sample, 0, len(fs.Children)*perChild)

	var withQuantile []string
	if len(fs.Quantiles) > 0 {
		withQuantile = append(slices.Clone(fs.LabelNames), QuantileLabel)
	}
	for _, c := range fs.Children {
		for _, q := range fs.Quantiles {
			samples = append(samples, Sample{
				Name:        fs.Name,
				LabelNames:  withQuantile,
				LabelValues: append(slices.Clone(c.LabelValues), FormatQuantile(q)),
				Value:       c.Value.MustQuantile(q),
			})
		}
		samples = append(samples,
			Sample{Name: fs.Name + "_count", LabelNames: fs.LabelNames, LabelValues: c.LabelValues, Value: c.Value.Count},
			Sample{Name: fs.Name + "_sum", LabelNames: fs.LabelNames, LabelValues: c.LabelValues, Value: c.Value.Sum},
		)
	}

	return MetricFamilySamples{
		Name:    fs.Name,
		Type:    TypeSummary,
		Help:    fs.Help,
		Samples: samples,
	}
}

// FormatQuantile formats q as a quantile label value.
func FormatQuantile(q float64) string {
	return strconv.FormatFloat(q, 'g', -1, 64)
}

var separator = []byte{0xff}

func hashLabelValues(values []string) uint64 {
	d := xxhash.New()
	for _, v := range values {
		_, _ = d.WriteString(v)
		_, _ = d.Write(separator)
	}
	return d.Sum64()
}
