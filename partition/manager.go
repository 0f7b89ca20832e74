package partition

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cool-japan/legalis-cluster/types"
)

// Manager assigns entity IDs to node-indexed partitions.
//
// The strategy is fixed at construction. All methods are safe for concurrent
// use: the partition ID counter is atomic and the partition list and entity
// index are guarded by a single mutex. Returned partitions are deep copies, so
// callers can hold them without locking.
type Manager struct {
	strategy Strategy
	nextID   atomic.Uint64

	mu         sync.RWMutex
	partitions []types.Partition
	slotByID   map[uint64]int    // partition ID -> slot in partitions
	owner      map[string]uint64 // entity ID -> owning partition ID
}

// NewManager creates a partition manager with the given strategy.
//
// Parameters:
//   - strategy: Placement algorithm, immutable after construction
//
// Returns:
//   - *Manager: Initialized manager with an empty partition list
func NewManager(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		slotByID: make(map[uint64]int),
		owner:    make(map[string]uint64),
	}
}

// Strategy returns the placement strategy selected at construction.
func (m *Manager) Strategy() Strategy {
	return m.strategy
}

// CreatePartitions splits entityIDs into exactly numNodes partitions, one per
// node index 0..numNodes-1, even if some end up empty. The union of the
// returned partitions' entities equals the input set exactly once each.
//
// Entities already assigned by a previous call are removed from their old
// partition before being placed, preserving the at-most-one-partition
// invariant. Duplicate IDs within one call are placed once.
//
// Parameters:
//   - entityIDs: Entity identifiers to place (may be empty)
//   - numNodes: Target node count, must be positive
//
// Returns:
//   - []types.Partition: The numNodes newly created partitions, indexed by node
//   - error: types.ErrInvalidNodeCount when numNodes is zero
func (m *Manager) CreatePartitions(entityIDs []string, numNodes int) ([]types.Partition, error) {
	if numNodes <= 0 {
		return nil, fmt.Errorf("create partitions: %w", types.ErrInvalidNodeCount)
	}

	// Range strategy needs the chunk size up front; ceil(total/numNodes).
	chunkSize := (len(entityIDs) + numNodes - 1) / numNodes

	buckets := make([][]string, numNodes)
	seen := make(map[string]struct{}, len(entityIDs))

	m.mu.Lock()
	defer m.mu.Unlock()

	pos := 0
	for _, id := range entityIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		m.evictLocked(id)

		idx := m.placementIndex(pos, id, numNodes, chunkSize)
		buckets[idx] = append(buckets[idx], id)
		pos++
	}

	created := make([]types.Partition, numNodes)
	for nodeID, entities := range buckets {
		pid := m.nextID.Add(1) - 1
		part := types.Partition{ID: pid, NodeID: nodeID, EntityIDs: entities}

		m.slotByID[pid] = len(m.partitions)
		m.partitions = append(m.partitions, part)
		for _, id := range entities {
			m.owner[id] = pid
		}

		created[nodeID] = part.Clone()
	}

	return created, nil
}

// GetPartition returns the partition currently owning entityID. The boolean is
// false when the entity is unassigned; an unknown entity is not an error.
func (m *Manager) GetPartition(entityID string) (types.Partition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pid, ok := m.owner[entityID]
	if !ok {
		return types.Partition{}, false
	}

	return m.partitions[m.slotByID[pid]].Clone(), true
}

// GetPartitionByID returns the partition with the given ID.
func (m *Manager) GetPartitionByID(partitionID uint64) (types.Partition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.slotByID[partitionID]
	if !ok {
		return types.Partition{}, false
	}

	return m.partitions[slot].Clone(), true
}

// GetNodePartitions returns the partitions owned by nodeID in creation order.
func (m *Manager) GetNodePartitions(nodeID int) []types.Partition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []types.Partition
	for _, part := range m.partitions {
		if part.NodeID == nodeID {
			result = append(result, part.Clone())
		}
	}

	return result
}

// Partitions returns all tracked partitions in creation order.
func (m *Manager) Partitions() []types.Partition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]types.Partition, 0, len(m.partitions))
	for _, part := range m.partitions {
		result = append(result, part.Clone())
	}

	return result
}

// PartitionCount returns the number of tracked partitions.
func (m *Manager) PartitionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.partitions)
}

// Reassign transfers ownership of a partition to another node. This is the
// mechanism callers use to execute an advisory rebalance move; the entity
// index is unaffected because entities stay in the same partition.
//
// Parameters:
//   - partitionID: Partition to transfer
//   - toNode: New owning node ID
//
// Returns:
//   - error: types.ErrPartitionNotFound when the partition ID is unknown
func (m *Manager) Reassign(partitionID uint64, toNode int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slotByID[partitionID]
	if !ok {
		return fmt.Errorf("reassign partition %d: %w", partitionID, types.ErrPartitionNotFound)
	}

	m.partitions[slot].NodeID = toNode

	return nil
}

// placementIndex computes the target partition index for one entity.
// Must be called with m.mu held (reads only immutable state, but keeps the
// call sites uniform).
func (m *Manager) placementIndex(pos int, entityID string, numNodes, chunkSize int) int {
	switch m.strategy {
	case Hash:
		return int(entityHash(entityID) % uint64(numNodes))
	case Range:
		idx := pos / chunkSize
		if idx >= numNodes {
			idx = numNodes - 1
		}

		return idx
	case RoundRobin, LoadBalanced, Geographic:
		return pos % numNodes
	default:
		return pos % numNodes
	}
}

// evictLocked removes an entity from its current partition, if any.
func (m *Manager) evictLocked(entityID string) {
	pid, ok := m.owner[entityID]
	if !ok {
		return
	}

	slot := m.slotByID[pid]
	entities := m.partitions[slot].EntityIDs
	for i, id := range entities {
		if id == entityID {
			m.partitions[slot].EntityIDs = append(entities[:i:i], entities[i+1:]...)
			break
		}
	}
	delete(m.owner, entityID)
}
