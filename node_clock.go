package hlc

import "time"

// NodeClock binds a Clock to one node id.
type NodeClock struct {
	clock  *Clock
	nodeID string
}

func (n *NodeClock) ID() string {
	return n.nodeID
}

func (n *NodeClock) Zero() Timestamp {
	return n.clock.Zero(n.nodeID)
}

func (n *NodeClock) FromTime(wallTime time.Time) (Timestamp, error) {
	return n.clock.FromTime(n.nodeID, wallTime)
}

func (n *NodeClock) Now() Timestamp {
	return n.clock.Now(n.nodeID)
}

// Increment returns the timestamp for a new local event
func (n *NodeClock) Increment() (Timestamp, error) {
	return n.clock.Increment(n.nodeID)
}

func (n *NodeClock) IncrementAt(wallTime time.Time) (Timestamp, error) {
	return n.clock.IncrementAt(n.nodeID, wallTime)
}

// Merge records the receipt of a remote timestamp
func (n *NodeClock) Merge(remote Timestamp) (Timestamp, error) {
	return n.clock.Merge(n.nodeID, remote)
}

func (n *NodeClock) MergeAt(remote Timestamp, wallTime time.Time) (Timestamp, error) {
	return n.clock.MergeAt(n.nodeID, remote, wallTime)
}

func (n *NodeClock) State() Timestamp {
	return n.clock.GetState(n.nodeID)
}

func (n *NodeClock) Reset() {
	n.clock.Reset(n.nodeID)
}
