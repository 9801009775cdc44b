// Package hlc implements a Hybrid Logical Clock (HLC) for ordering events across nodes
// without tightly synchronised clocks. A timestamp combines a UTC wall time, a 16 bit
// logical counter and the identifier of the node that produced it, and is encoded on
// the wire as "<RFC3339 time>-<4 hex digit counter>-<node id>". Each node's clock only
// moves forward: increments and merges of remote timestamps are validated against a
// maximum drift and counter overflow before the node's state is replaced.
package hlc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxCounter is the largest logical counter that fits the 4 hex digit field
	MaxCounter = 0xFFFF

	wallTimeLayout = time.RFC3339Nano
)

var (
	// Epoch is the wall time of a freshly created clock state
	Epoch = time.Unix(0, 0).UTC()

	// MinWallTime and MaxWallTime bound the wall times RFC 3339 can represent, years 0000 to 9999
	MinWallTime = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxWallTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// Timestamp is an immutable HLC timestamp.
type Timestamp struct {
	wallTime time.Time
	counter  uint16
	nodeID   string
}

// NewTimestamp creates a timestamp, the counter must be within 0..MaxCounter and the
// wall time within MinWallTime..MaxWallTime.
func NewTimestamp(wallTime time.Time, counter int, nodeID string) (Timestamp, error) {
	if counter < 0 || counter > MaxCounter {
		return Timestamp{}, &CounterOverflowError{Counter: counter}
	}

	wallTime = normalizeTime(wallTime)
	if err := checkWallTime(wallTime); err != nil {
		return Timestamp{}, err
	}

	return Timestamp{
		wallTime: wallTime,
		counter:  uint16(counter),
		nodeID:   nodeID,
	}, nil
}

// Strip the monotonic reading and pin to UTC so equal instants compare and format identically
func normalizeTime(t time.Time) time.Time {
	return t.Round(0).UTC()
}

func checkWallTime(t time.Time) error {
	if t.Before(MinWallTime) || t.After(MaxWallTime) {
		return fmt.Errorf("%w: year %d is outside 0000..9999", ErrInvalidTimestamp, t.Year())
	}
	return nil
}

// Pins a wall clock reading into the representable range
func clampWallTime(t time.Time) time.Time {
	if t.Before(MinWallTime) {
		return MinWallTime
	}
	if t.After(MaxWallTime) {
		return MaxWallTime
	}
	return t
}

// WallTime returns the wall clock component in UTC.
func (ts Timestamp) WallTime() time.Time {
	return ts.wallTime
}

// Counter returns the logical counter.
func (ts Timestamp) Counter() uint16 {
	return ts.counter
}

// NodeID returns the identifier of the node owning the timestamp.
func (ts Timestamp) NodeID() string {
	return ts.nodeID
}

// String returns the canonical encoding of the timestamp.
func (ts Timestamp) String() string {
	return fmt.Sprintf("%s-%04X-%s", ts.wallTime.Format(wallTimeLayout), ts.counter, ts.nodeID)
}

// Format is an alias of String.
func (ts Timestamp) Format() string {
	return ts.String()
}

func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

func (ts *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Compare returns -1, 0 or 1 ordering by wall time, then counter, then node id.
func (ts Timestamp) Compare(other Timestamp) int {
	if c := ts.wallTime.Compare(other.wallTime); c != 0 {
		return c
	}

	if ts.counter < other.counter {
		return -1
	}
	if ts.counter > other.counter {
		return 1
	}

	return strings.Compare(ts.nodeID, other.nodeID)
}

// Before returns true if ts is before other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Compare(other) < 0
}

// After returns true if ts is after other.
func (ts Timestamp) After(other Timestamp) bool {
	return ts.Compare(other) > 0
}

// Equal returns true if all three components match.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts.Compare(other) == 0
}

// Compare orders two timestamps, see Timestamp.Compare.
func Compare(a, b Timestamp) int { return a.Compare(b) }

func Lt(a, b Timestamp) bool  { return a.Compare(b) < 0 }
func Gt(a, b Timestamp) bool  { return a.Compare(b) > 0 }
func Eq(a, b Timestamp) bool  { return a.Compare(b) == 0 }
func Lte(a, b Timestamp) bool { return a.Compare(b) <= 0 }
func Gte(a, b Timestamp) bool { return a.Compare(b) >= 0 }

// Parse decodes the canonical "<time>-<counter>-<node id>" form.
//
// The string is first split from the right into three fields. If that does not
// produce a valid wall time the node id must contain '-', so the first prefix that
// parses as an RFC 3339 time is taken as the wall time instead.
func Parse(s string) (Timestamp, error) {
	wall, counter, nodeID, ok := splitRight(s)
	if !ok {
		return Timestamp{}, fmt.Errorf("%w: %q, expected <time>-<counter>-<node id>", ErrInvalidFormat, s)
	}

	ts, err := parseFields(wall, counter, nodeID)
	if err == nil {
		return ts, nil
	}

	if scanned, ok := parseScanningLeft(s); ok {
		return scanned, nil
	}

	return Timestamp{}, err
}

// MustParse is like Parse but panics on error, for constants and tests.
func MustParse(s string) Timestamp {
	ts, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func splitRight(s string) (wall, counter, nodeID string, ok bool) {
	i := strings.LastIndexByte(s, '-')
	if i < 0 {
		return "", "", "", false
	}
	nodeID = s[i+1:]

	rest := s[:i]
	j := strings.LastIndexByte(rest, '-')
	if j < 0 {
		return "", "", "", false
	}

	return rest[:j], rest[j+1:], nodeID, true
}

func parseScanningLeft(s string) (Timestamp, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		if _, err := time.Parse(wallTimeLayout, s[:i]); err != nil {
			continue
		}

		rest := s[i+1:]
		k := strings.IndexByte(rest, '-')
		if k < 0 {
			return Timestamp{}, false
		}

		ts, err := parseFields(s[:i], rest[:k], rest[k+1:])
		return ts, err == nil
	}

	return Timestamp{}, false
}

func parseFields(wall, counter, nodeID string) (Timestamp, error) {
	if counter == "" {
		return Timestamp{}, fmt.Errorf("%w: empty counter", ErrInvalidFormat)
	}

	c, err := strconv.ParseUint(counter, 16, 32)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: counter %q is not hexadecimal", ErrInvalidFormat, counter)
	}
	if c > MaxCounter {
		return Timestamp{}, fmt.Errorf("%w: counter %q exceeds %04X", ErrInvalidFormat, counter, MaxCounter)
	}

	t, err := time.Parse(wallTimeLayout, wall)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: wall time %q: %v", ErrInvalidFormat, wall, err)
	}
	t = normalizeTime(t)
	if err := checkWallTime(t); err != nil {
		return Timestamp{}, fmt.Errorf("%w: wall time %q: %v", ErrInvalidFormat, wall, err)
	}

	return Timestamp{
		wallTime: t,
		counter:  uint16(c),
		nodeID:   nodeID,
	}, nil
}

// parseWallTime parses a caller supplied wall time such as the FromDate argument.
func parseWallTime(s string) (time.Time, error) {
	t, err := time.Parse(wallTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}
	t = normalizeTime(t)
	if err := checkWallTime(t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}
