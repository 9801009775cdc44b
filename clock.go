package hlc

import (
	"time"

	"github.com/google/uuid"
)

// Clock implements the HLC state transitions for any number of nodes sharing one Store.
type Clock struct {
	config          *Config
	store           Store
	logger          Logger
	localID         string
	advanceHandlers *EventHandlers[AdvanceHandler]
	rejectHandlers  *EventHandlers[RejectHandler]
}

// NewClock creates a clock, a nil config uses DefaultConfig.
func NewClock(config *Config) (*Clock, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config.MergeDefault()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	localID := config.NodeID
	if localID == "" {
		localID = uuid.New().String()
	}

	store := config.Store
	if store == nil {
		store = NewMemoryStore(config.StoreShardCount)
	}

	c := &Clock{
		config:          config,
		store:           store,
		logger:          config.Logger,
		localID:         localID,
		advanceHandlers: NewEventHandlers[AdvanceHandler](),
		rejectHandlers:  NewEventHandlers[RejectHandler](),
	}

	return c, nil
}

// Store returns the state store backing the clock
func (c *Clock) Store() Store {
	return c.store
}

// MaxDrift returns the configured drift limit
func (c *Clock) MaxDrift() time.Duration {
	return c.config.MaxDrift
}

// Readings outside MinWallTime..MaxWallTime are clamped so the state stays formattable
func (c *Clock) wallNow() time.Time {
	return clampWallTime(normalizeTime(c.config.WallClock()))
}

// Zero resets the node to the Unix epoch with a zero counter.
func (c *Clock) Zero(nodeID string) Timestamp {
	return c.set(nodeID, zeroState(nodeID))
}

// FromDate sets the node to the given RFC 3339 wall time with a zero counter.
func (c *Clock) FromDate(nodeID string, wallTime string) (Timestamp, error) {
	t, err := parseWallTime(wallTime)
	if err != nil {
		return Timestamp{}, err
	}
	return c.FromTime(nodeID, t)
}

// FromTime sets the node to the given wall time with a zero counter, wall times outside
// MinWallTime..MaxWallTime fail with ErrInvalidTimestamp.
func (c *Clock) FromTime(nodeID string, wallTime time.Time) (Timestamp, error) {
	wallTime = normalizeTime(wallTime)
	if err := checkWallTime(wallTime); err != nil {
		return Timestamp{}, err
	}
	return c.set(nodeID, State{WallTime: wallTime, Counter: 0, NodeID: nodeID}), nil
}

// Now sets the node to the current wall time with a zero counter.
//
// This overwrites the state unconditionally and can move the clock backwards, use
// Increment to generate event timestamps.
func (c *Clock) Now(nodeID string) Timestamp {
	return c.set(nodeID, State{WallTime: c.wallNow(), Counter: 0, NodeID: nodeID})
}

func (c *Clock) set(nodeID string, state State) Timestamp {
	c.store.Put(nodeID, state)
	return c.advanced(nodeID, state)
}

// Increment advances the node's clock for a local event using the current wall time.
func (c *Clock) Increment(nodeID string) (Timestamp, error) {
	return c.IncrementAt(nodeID, c.wallNow())
}

// IncrementString is IncrementAt with the wall time given in RFC 3339 form.
func (c *Clock) IncrementString(nodeID string, wallTime string) (Timestamp, error) {
	t, err := parseWallTime(wallTime)
	if err != nil {
		c.rejected(nodeID, "increment", err)
		return Timestamp{}, err
	}
	return c.IncrementAt(nodeID, t)
}

// IncrementAt advances the node's clock for a local event observed at wallTime.
//
// The clock takes the later of its current time and wallTime. If its own time is
// kept the counter is incremented, otherwise it restarts at zero. Fails with a
// ClockDriftError when the clock is more than MaxDrift ahead of wallTime and with a
// CounterOverflowError when the counter would exceed MaxCounter. A wall time outside
// MinWallTime..MaxWallTime fails with ErrInvalidTimestamp.
func (c *Clock) IncrementAt(nodeID string, wallTime time.Time) (Timestamp, error) {
	wallTime = normalizeTime(wallTime)
	if err := checkWallTime(wallTime); err != nil {
		c.rejected(nodeID, "increment", err)
		return Timestamp{}, err
	}
	maxDrift := c.config.MaxDrift

	state, err := c.store.Update(nodeID, func(current State) (State, error) {
		newTime := current.WallTime
		if wallTime.After(newTime) {
			newTime = wallTime
		}

		newCounter := 0
		if newTime.Equal(current.WallTime) {
			newCounter = int(current.Counter) + 1
		}

		if drift := newTime.Sub(wallTime); drift > maxDrift {
			return current, newClockDriftError(drift, maxDrift)
		}
		if newCounter > MaxCounter {
			return current, &CounterOverflowError{Counter: newCounter}
		}

		return State{WallTime: newTime, Counter: uint16(newCounter), NodeID: nodeID}, nil
	})
	if err != nil {
		c.rejected(nodeID, "increment", err)
		return Timestamp{}, err
	}

	return c.advanced(nodeID, state), nil
}

// Merge folds a remote timestamp into the node's clock using the current wall time.
func (c *Clock) Merge(nodeID string, remote Timestamp) (Timestamp, error) {
	return c.MergeAt(nodeID, remote, c.wallNow())
}

// MergeString is MergeAt with the remote timestamp in canonical form and the wall
// time in RFC 3339 form.
func (c *Clock) MergeString(nodeID string, remote string, wallTime string) (Timestamp, error) {
	r, err := Parse(remote)
	if err != nil {
		c.rejected(nodeID, "merge", err)
		return Timestamp{}, err
	}

	t, err := parseWallTime(wallTime)
	if err != nil {
		c.rejected(nodeID, "merge", err)
		return Timestamp{}, err
	}

	return c.MergeAt(nodeID, r, t)
}

// MergeAt folds a remote timestamp into the node's clock, wallTime is the local
// observation of the current time.
//
// A remote timestamp that is not ahead of the node by wall time and counter leaves
// the clock unchanged and the current value is returned. Otherwise the remote must
// come from a different node and be no more than MaxDrift ahead of wallTime, and
// the node adopts its wall time and counter while keeping its own node id.
func (c *Clock) MergeAt(nodeID string, remote Timestamp, wallTime time.Time) (Timestamp, error) {
	wallTime = normalizeTime(wallTime)
	maxDrift := c.config.MaxDrift
	changed := false

	state, err := c.store.Update(nodeID, func(current State) (State, error) {
		remoteTime := remote.wallTime
		if remoteTime.Before(current.WallTime) ||
			(remoteTime.Equal(current.WallTime) && remote.counter <= current.Counter) {
			return current, nil
		}

		if remote.nodeID == nodeID {
			return current, &DuplicateNodeError{NodeID: nodeID}
		}

		if drift := remoteTime.Sub(wallTime); drift > maxDrift {
			return current, newClockDriftError(drift, maxDrift)
		}

		changed = true
		return State{WallTime: remoteTime, Counter: remote.counter, NodeID: nodeID}, nil
	})
	if err != nil {
		c.rejected(nodeID, "merge", err)
		return Timestamp{}, err
	}

	if !changed {
		return state.Timestamp(), nil
	}
	return c.advanced(nodeID, state), nil
}

// IncrementOrNow is Increment falling back to Now on failure.
//
// The fallback gives up the monotonicity and drift guarantees of Increment, it exists
// for callers that must always receive a timestamp.
func (c *Clock) IncrementOrNow(nodeID string) Timestamp {
	ts, err := c.Increment(nodeID)
	if err != nil {
		c.logger.Field("node_id", nodeID).Err(err).Warnf("increment failed, falling back to wall clock")
		return c.Now(nodeID)
	}
	return ts
}

// MergeOrNow is Merge falling back to Now on failure, see IncrementOrNow.
func (c *Clock) MergeOrNow(nodeID string, remote Timestamp) Timestamp {
	ts, err := c.Merge(nodeID, remote)
	if err != nil {
		c.logger.Field("node_id", nodeID).Err(err).Warnf("merge failed, falling back to wall clock")
		return c.Now(nodeID)
	}
	return ts
}

// GetState returns the node's current timestamp, creating the zero state if needed.
func (c *Clock) GetState(nodeID string) Timestamp {
	return c.store.GetOrCreate(nodeID).Timestamp()
}

// Reset discards the node's state.
func (c *Clock) Reset(nodeID string) {
	c.store.Reset(nodeID)
	c.logger.Field("node_id", nodeID).Debugf("clock reset")
}

// Nodes lists the node ids the clock holds state for
func (c *Clock) Nodes() []string {
	return c.store.Nodes()
}

// Node returns a handle for a single node id
func (c *Clock) Node(nodeID string) *NodeClock {
	return &NodeClock{clock: c, nodeID: nodeID}
}

// Local returns the handle for the configured node id
func (c *Clock) Local() *NodeClock {
	return c.Node(c.localID)
}

// HandleAdvance registers a handler called after every state change
func (c *Clock) HandleAdvance(handler AdvanceHandler) HandlerID {
	return c.advanceHandlers.Add(handler)
}

func (c *Clock) RemoveAdvanceHandler(id HandlerID) bool {
	return c.advanceHandlers.Remove(id)
}

// HandleReject registers a handler called when an increment or merge fails
func (c *Clock) HandleReject(handler RejectHandler) HandlerID {
	return c.rejectHandlers.Add(handler)
}

func (c *Clock) RemoveRejectHandler(id HandlerID) bool {
	return c.rejectHandlers.Remove(id)
}

func (c *Clock) advanced(nodeID string, state State) Timestamp {
	ts := state.Timestamp()
	c.logger.Field("node_id", nodeID).Field("ts", ts.String()).Debugf("clock advanced")

	c.advanceHandlers.ForEach(func(h AdvanceHandler) {
		h(nodeID, ts)
	})
	return ts
}

func (c *Clock) rejected(nodeID string, op string, err error) {
	c.logger.Field("node_id", nodeID).Err(err).Warnf("%s rejected", op)

	c.rejectHandlers.ForEach(func(h RejectHandler) {
		h(nodeID, err)
	})
}
