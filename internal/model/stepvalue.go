package model

// CapThreshold is the step count at which the API stops reporting exact
// values and returns an overflow marker instead. A capped day's true
// count is unknown but at least this.
const CapThreshold = 30000

// StepKind discriminates StepValue variants.
type StepKind int

const (
	StepMissing StepKind = iota
	StepCapped
	StepNumeric
)

// StepValue is the canonical in-memory step count: missing, capped at
// the reporting threshold, or an exact number. Display strings are
// derived from it only at the report boundary.
type StepValue struct {
	Kind  StepKind
	Steps int // exact count, set only for StepNumeric
}

// Missing returns the value for a day with no usable report.
func Missing() StepValue { return StepValue{Kind: StepMissing} }

// Capped returns the value for a day at or above the reporting threshold.
func Capped() StepValue { return StepValue{Kind: StepCapped} }

// Numeric returns the value for an exact step count.
func Numeric(n int) StepValue { return StepValue{Kind: StepNumeric, Steps: n} }

// Comparable returns the count used for target comparisons. A capped day
// floors at the threshold rather than pretending to know the exact count.
func (v StepValue) Comparable() int {
	switch v.Kind {
	case StepCapped:
		return CapThreshold
	case StepNumeric:
		return v.Steps
	default:
		return 0
	}
}

// Completed reports whether the day counts as a completed day: any
// positive exact count, or a capped one.
func (v StepValue) Completed() bool {
	return v.Kind == StepCapped || (v.Kind == StepNumeric && v.Steps > 0)
}
