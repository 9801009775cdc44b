package hlc

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidFormat    = errors.New("invalid HLC format")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrClockDrift       = errors.New("clock drift")
	ErrCounterOverflow  = errors.New("timestamp counter overflow")
	ErrDuplicateNode    = errors.New("duplicate node")
)

// ClockDriftError is returned when a wall time deviates from the clock by more than the allowed drift
type ClockDriftError struct {
	Drift        time.Duration
	DriftMinutes int64
	Max          time.Duration
}

func newClockDriftError(drift, max time.Duration) *ClockDriftError {
	return &ClockDriftError{
		Drift:        drift,
		DriftMinutes: int64(drift / time.Minute),
		Max:          max,
	}
}

func (e *ClockDriftError) Error() string {
	return fmt.Sprintf("clock drift of %s exceeds maximum of %s", e.Drift, e.Max)
}

func (e *ClockDriftError) Is(target error) bool {
	return target == ErrClockDrift
}

// CounterOverflowError is returned when the logical counter leaves its 16 bit range
type CounterOverflowError struct {
	Counter int
}

func (e *CounterOverflowError) Error() string {
	return fmt.Sprintf("timestamp counter overflow: %d", e.Counter)
}

func (e *CounterOverflowError) Is(target error) bool {
	return target == ErrCounterOverflow
}

// DuplicateNodeError is returned when a merge receives a timestamp carrying the local node id
type DuplicateNodeError struct {
	NodeID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate node: %s", e.NodeID)
}

func (e *DuplicateNodeError) Is(target error) bool {
	return target == ErrDuplicateNode
}
