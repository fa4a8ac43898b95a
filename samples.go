package summary

// Type identifies the kind of a metric family.
type Type string

// TypeSummary is the only family type emitted by this package.
const TypeSummary Type = "summary"

// Sample is a single named value with its labels.
// LabelNames and LabelValues have the same length.
type Sample struct {
	Name        string
	LabelNames  []string
	LabelValues []string
	Value       float64
}

// MetricFamilySamples groups the samples of one metric family.
type MetricFamilySamples struct {
	Name    string
	Type    Type
	Help    string
	Samples []Sample
}

// ChildSnapshot is the Value of one child together with its label values.
type ChildSnapshot struct {
	LabelValues []string
	Value       Value
}

// FamilySnapshot is the read-time view of a whole Summary.
// Children are ordered by label values.
type FamilySnapshot struct {
	Name       string
	Help       string
	LabelNames []string
	Quantiles  []float64
	Children   []ChildSnapshot
}
