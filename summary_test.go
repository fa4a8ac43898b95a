package summary

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name    string
		metric  string
		opts    []Option
		wantErr error
	}{
		{name: "quantile_above_one", metric: "s", opts: []Option{WithQuantiles(1.5)}, wantErr: ErrInvalidQuantile},
		{name: "quantile_below_zero", metric: "s", opts: []Option{WithQuantiles(0.5, -0.01)}, wantErr: ErrInvalidQuantile},
		{name: "reserved_label", metric: "s", opts: []Option{WithLabelNames("method", QuantileLabel)}, wantErr: ErrReservedLabel},
		{name: "duplicate_label", metric: "s", opts: []Option{WithLabelNames("a", "a")}, wantErr: ErrDuplicateLabel},
		{name: "negative_reservoir", metric: "s", opts: []Option{WithReservoirSize(-1)}, wantErr: ErrInvalidReservoirSize},
		{name: "empty_name", metric: "", wantErr: ErrEmptyName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.metric, tc.opts...)
			require.ErrorIs(t, err, tc.wantErr)
			require.Nil(t, s)
		})
	}

	require.Panics(t, func() { MustNew("s", WithQuantiles(2)) })
}

func TestNew_Defaults(t *testing.T) {
	s, err := New("rpc_seconds", WithNamespace("app"), WithSubsystem("server"), WithHelp("RPC latency."))
	require.NoError(t, err)
	require.Equal(t, "app_server_rpc_seconds", s.Name())
	require.Equal(t, "RPC latency.", s.Help())
	require.Equal(t, DefaultQuantiles, s.Quantiles())
	require.Empty(t, s.LabelNames())
}

func TestNew_CopiesCallerSlices(t *testing.T) {
	qs := []float64{0.5, 0.9}
	labels := []string{"code"}
	s := MustNew("copies", WithQuantiles(qs...), WithLabelNames(labels...))
	qs[0] = 0.1
	labels[0] = "mutated"

	require.Equal(t, []float64{0.5, 0.9}, s.Quantiles())
	require.Equal(t, []string{"code"}, s.LabelNames())
}

func TestSummary_CollectOneToTen(t *testing.T) {
	s := MustNew("request_size_bytes", WithHelp("Request size."))
	for i := 1; i <= 10; i++ {
		s.Observe(float64(i))
	}

	families := s.Collect()
	require.Len(t, families, 1)
	mfs := families[0]
	require.Equal(t, "request_size_bytes", mfs.Name)
	require.Equal(t, TypeSummary, mfs.Type)
	require.Equal(t, "Request size.", mfs.Help)
	require.Len(t, mfs.Samples, len(DefaultQuantiles)+2)

	wantQuantiles := []struct {
		label string
		value float64
	}{
		{"0.5", 5.5}, {"0.95", 10}, {"0.98", 10}, {"0.99", 10}, {"0.999", 10},
	}
	for i, want := range wantQuantiles {
		got := mfs.Samples[i]
		require.Equal(t, "request_size_bytes", got.Name)
		require.Equal(t, []string{QuantileLabel}, got.LabelNames)
		require.Equal(t, []string{want.label}, got.LabelValues)
		require.InDelta(t, want.value, got.Value, 1e-9)
	}

	count := mfs.Samples[len(DefaultQuantiles)]
	require.Equal(t, "request_size_bytes_count", count.Name)
	require.Empty(t, count.LabelNames)
	require.Equal(t, 10.0, count.Value)

	sum := mfs.Samples[len(DefaultQuantiles)+1]
	require.Equal(t, "request_size_bytes_sum", sum.Name)
	require.Equal(t, 55.0, sum.Value)
}

func TestSummary_CollectWithoutQuantiles(t *testing.T) {
	s := MustNew("no_quantiles", WithQuantiles())
	s.Observe(3)

	samples := s.Collect()[0].Samples
	require.Len(t, samples, 2)
	require.Equal(t, "no_quantiles_count", samples[0].Name)
	require.Equal(t, "no_quantiles_sum", samples[1].Name)
	require.Equal(t, 3.0, samples[1].Value)
}

func TestSummary_CollectEmptyReservoir(t *testing.T) {
	s := MustNew("untouched", WithQuantiles(0.5))
	samples := s.Collect()[0].Samples
	require.Len(t, samples, 3)
	for _, smp := range samples {
		require.Equal(t, 0.0, smp.Value)
	}
}

func TestSummary_Labels(t *testing.T) {
	s := MustNew("http_seconds", WithLabelNames("method", "code"), WithQuantiles(0.5, 0.9))

	s.MustWith("POST", "201").Observe(2)
	s.MustWith("GET", "200").Observe(1)
	s.MustWith("GET", "200").Observe(3)

	samples := s.Collect()[0].Samples
	require.Len(t, samples, 8)

	// children are ordered by label values
	require.Equal(t, []string{"method", "code", QuantileLabel}, samples[0].LabelNames)
	require.Equal(t, []string{"GET", "200", "0.5"}, samples[0].LabelValues)
	require.Equal(t, 2.0, samples[0].Value)
	require.Equal(t, []string{"GET", "200", "0.9"}, samples[1].LabelValues)
	require.Equal(t, "http_seconds_count", samples[2].Name)
	require.Equal(t, []string{"method", "code"}, samples[2].LabelNames)
	require.Equal(t, []string{"GET", "200"}, samples[2].LabelValues)
	require.Equal(t, 2.0, samples[2].Value)
	require.Equal(t, 4.0, samples[3].Value)
	require.Equal(t, []string{"POST", "201", "0.5"}, samples[4].LabelValues)
	require.Equal(t, 2.0, samples[7].Value)
}

func TestSummary_CardinalityErrors(t *testing.T) {
	s := MustNew("labelled", WithLabelNames("a"))

	_, err := s.With()
	require.ErrorIs(t, err, ErrInconsistentCardinality)
	_, err = s.With("x", "y")
	require.ErrorIs(t, err, ErrInconsistentCardinality)

	require.Panics(t, func() { s.Observe(1) })
	require.Panics(t, func() { s.StartTimer() })
	require.Panics(t, func() { s.MustWith() })
}

func TestSummary_WithReturnsSameChild(t *testing.T) {
	s := MustNew("shared", WithLabelNames("k"))

	const goroutines = 32
	children := make([]*Child, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			children[i] = s.MustWith("v")
		}(i)
	}
	wg.Wait()

	for _, c := range children {
		require.Same(t, children[0], c)
	}
	require.Len(t, s.Snapshot().Children, 1)
}

func TestSummary_LabelValuesAreNotConfused(t *testing.T) {
	s := MustNew("joined", WithLabelNames("a", "b"))
	s.MustWith("ab", "c").Observe(1)
	s.MustWith("a", "bc").Observe(2)

	snap := s.Snapshot()
	require.Len(t, snap.Children, 2)
	require.Equal(t, []string{"a", "bc"}, snap.Children[0].LabelValues)
	require.Equal(t, 2.0, snap.Children[0].Value.Sum)
}

func TestSummary_RemoveAndClear(t *testing.T) {
	s := MustNew("removable", WithLabelNames("k"))
	s.MustWith("a").Observe(1)
	s.MustWith("b").Observe(1)

	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
	require.False(t, s.Remove("a", "extra"))
	require.Len(t, s.Snapshot().Children, 1)

	s.Clear()
	require.Empty(t, s.Snapshot().Children)
	require.Empty(t, s.Collect()[0].Samples)

	// a fresh child starts from zero
	require.Equal(t, 0.0, s.MustWith("b").Get().Count)
}

func TestSummary_ClearLabelLess(t *testing.T) {
	s := MustNew("plain")
	s.Observe(5)
	s.Clear()

	require.Equal(t, 0.0, s.MustWith().Get().Count)
	s.Observe(1)
	require.Equal(t, 1.0, s.MustWith().Get().Count)

	require.True(t, s.Remove())
	s.Observe(2)
	require.Equal(t, 2.0, s.MustWith().Get().Sum)
}

func TestFormatQuantile(t *testing.T) {
	require.Equal(t, "0.5", FormatQuantile(0.5))
	require.Equal(t, "0.999", FormatQuantile(0.999))
	require.Equal(t, "1", FormatQuantile(1))
	require.Equal(t, "0", FormatQuantile(0))
}

func TestSummary_ObserveDuringClear(t *testing.T) {
	s := MustNew("plain")

	const writers = 4
	var (
		wg     sync.WaitGroup
		panics atomic.Int64
		stop   = make(chan struct{})
	)
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func() {
			defer wg.Done()
			observe := func() {
				defer func() {
					if recover() != nil {
						panics.Add(1)
					}
				}()
				s.Observe(1)
				s.StartTimer().ObserveDuration()
			}
			for {
				select {
				case <-stop:
					return
				default:
					observe()
				}
			}
		}()
	}
	for i := 0; i < 20000; i++ {
		s.Clear()
	}
	close(stop)
	wg.Wait()

	require.Zero(t, panics.Load())
	s.Observe(3)
	require.GreaterOrEqual(t, s.MustWith().Get().Count, 1.0)
}
