package mpi

import "fmt"

// ConfigurationError indicates contradictory or out-of-range caller
// configuration: both weight modes supplied at once, or a poverty
// threshold outside [0,1].
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// ValidationError indicates a weight specification that does not hold
// up: a sum outside tolerance of 1.0, an unknown domain or indicator
// name, or partial coverage where it must be total.
type ValidationError struct {
	Subject string
	Reason  string
	Sum     float64
	Want    float64
}

func (e *ValidationError) Error() string {
	if e.Want != 0 {
		return fmt.Sprintf("invalid weights for %s: %s (got %v, want %v)", e.Subject, e.Reason, e.Sum, e.Want)
	}
	return fmt.Sprintf("invalid weights for %s: %s", e.Subject, e.Reason)
}

// DataError indicates a structural mismatch between the dataset and
// the declared dimensions: a missing indicator column, a non-binary
// value, or an empty dataset where a ratio is undefined.
type DataError struct {
	Unit      int // record index, -1 when the error is not tied to a unit
	Indicator string
	Reason    string
}

func (e *DataError) Error() string {
	switch {
	case e.Unit >= 0 && e.Indicator != "":
		return fmt.Sprintf("invalid data: unit %d, indicator %q: %s", e.Unit, e.Indicator, e.Reason)
	case e.Indicator != "":
		return fmt.Sprintf("invalid data: indicator %q: %s", e.Indicator, e.Reason)
	default:
		return "invalid data: " + e.Reason
	}
}
