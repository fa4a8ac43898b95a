package summary

// Provider constructs summaries by name.
// Implementations must be safe for concurrent use.
//
// This interface is kept minimal; new capabilities go into separate optional
// interfaces such as Inspector.
type Provider interface {
	Summary(name string, opts ...Option) (*Summary, error)
}

// Metadata is the descriptive configuration of a Summary as it was created.
type Metadata struct {
	Help          string
	LabelNames    []string
	Quantiles     []float64
	ReservoirSize int
}

func metadataOf(s *Summary) Metadata {
	return Metadata{
		Help:          s.Help(),
		LabelNames:    s.LabelNames(),
		Quantiles:     s.Quantiles(),
		ReservoirSize: s.ReservoirSize(),
	}
}
