package summary

import "github.com/pkg/errors"

var (
	// ErrEmptyName is returned when a summary is built without a name.
	ErrEmptyName = errors.New("summary name must not be empty")
	// ErrInvalidQuantile is returned for a φ outside [0, 1].
	ErrInvalidQuantile = errors.New("quantile value must be in interval [0, 1]")
	// ErrReservedLabel is returned when a label is named QuantileLabel.
	ErrReservedLabel = errors.New("summary cannot have a label named '" + QuantileLabel + "'")
	// ErrDuplicateLabel is returned when the same label name is configured twice.
	ErrDuplicateLabel = errors.New("duplicate label name")
	// ErrInvalidReservoirSize is returned for a negative reservoir size.
	ErrInvalidReservoirSize = errors.New("reservoir size must not be negative")
	// ErrInconsistentCardinality is returned when the number of label values
	// does not match the number of label names.
	ErrInconsistentCardinality = errors.New("inconsistent label cardinality")
)
