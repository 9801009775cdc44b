package hlc

import (
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// State is the mutable clock record held for a node.
type State struct {
	WallTime time.Time
	Counter  uint16
	NodeID   string
}

func zeroState(nodeID string) State {
	return State{WallTime: Epoch, Counter: 0, NodeID: nodeID}
}

// Timestamp returns the externally visible value of the state
func (s State) Timestamp() Timestamp {
	return Timestamp{
		wallTime: normalizeTime(s.WallTime),
		counter:  s.Counter,
		nodeID:   s.NodeID,
	}
}

// Store maps node ids to clock state.
//
// Update must run fn and the write of its result while holding exclusive access to
// the node's state, it is the only way the clock mutates state so concurrent
// increments of one node can't lose updates. When fn returns an error nothing is
// written.
type Store interface {
	GetOrCreate(nodeID string) State
	Put(nodeID string, state State)
	Reset(nodeID string)
	Update(nodeID string, fn func(State) (State, error)) (State, error)
	Nodes() []string
}

type storeShard struct {
	mutex  sync.Mutex
	states map[string]State
}

// MemoryStore keeps clock state in memory, spread over lock shards selected by hashing the node id
type MemoryStore struct {
	shardMask uint64
	shards    []*storeShard
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store with shardCount shards, which must be a power of 2
func NewMemoryStore(shardCount int) *MemoryStore {
	if shardCount < 1 || shardCount&(shardCount-1) != 0 {
		shardCount = 1
	}

	ms := &MemoryStore{
		shardMask: uint64(shardCount - 1),
		shards:    make([]*storeShard, shardCount),
	}

	for i := 0; i < shardCount; i++ {
		ms.shards[i] = &storeShard{
			states: make(map[string]State),
		}
	}

	return ms
}

func (ms *MemoryStore) getShard(nodeID string) *storeShard {
	return ms.shards[xxhash.Sum64String(nodeID)&ms.shardMask]
}

// GetOrCreate returns a copy of the node's state, inserting the zero state on first use
func (ms *MemoryStore) GetOrCreate(nodeID string) State {
	shard := ms.getShard(nodeID)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	return shard.getOrCreate(nodeID)
}

func (s *storeShard) getOrCreate(nodeID string) State {
	state, ok := s.states[nodeID]
	if !ok {
		state = zeroState(nodeID)
		s.states[nodeID] = state
	}
	return state
}

// Put replaces the node's state
func (ms *MemoryStore) Put(nodeID string, state State) {
	shard := ms.getShard(nodeID)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	shard.states[nodeID] = state
}

// Reset forgets the node, the next access starts again from the zero state
func (ms *MemoryStore) Reset(nodeID string) {
	shard := ms.getShard(nodeID)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	delete(shard.states, nodeID)
}

// Update runs a read-modify-write of the node's state under the shard lock
func (ms *MemoryStore) Update(nodeID string, fn func(State) (State, error)) (State, error) {
	shard := ms.getShard(nodeID)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	current := shard.getOrCreate(nodeID)
	next, err := fn(current)
	if err != nil {
		return current, err
	}

	shard.states[nodeID] = next
	return next, nil
}

// Nodes returns the sorted ids of all nodes with state
func (ms *MemoryStore) Nodes() []string {
	var nodes []string
	for _, shard := range ms.shards {
		shard.mutex.Lock()
		for nodeID := range shard.states {
			nodes = append(nodes, nodeID)
		}
		shard.mutex.Unlock()
	}

	sort.Strings(nodes)
	return nodes
}
