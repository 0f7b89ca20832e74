package types

// Partition is an ordered collection of entity IDs owned by exactly one node
// at a time.
//
// Partition IDs come from a manager-local monotonic counter and are never
// reused, so partitions created across multiple distribution calls never
// collide. An entity ID appears in at most one partition at a time; the
// partition manager enforces this on creation and reassignment.
type Partition struct {
	// ID uniquely identifies the partition within one manager's lifetime.
	ID uint64 `json:"id"`

	// NodeID identifies the owning node.
	NodeID int `json:"nodeId"`

	// EntityIDs is the ordered list of entity identifiers assigned to this
	// partition. Append-only during assignment.
	EntityIDs []string `json:"entityIds"`
}

// Size returns the number of entities in the partition.
func (p Partition) Size() int {
	return len(p.EntityIDs)
}

// Clone returns a deep copy of the partition so callers can hold snapshots
// without aliasing manager-owned state.
func (p Partition) Clone() Partition {
	out := p
	out.EntityIDs = make([]string, len(p.EntityIDs))
	copy(out.EntityIDs, p.EntityIDs)

	return out
}

// Move is an advisory instruction to relocate one partition from one node to
// another. It does not itself mutate any state; the caller that executes a
// move is responsible for reassigning the partition and updating node entity
// counts afterwards.
type Move struct {
	// PartitionID identifies the partition to relocate.
	PartitionID uint64 `json:"partitionId"`

	// FromNode is the current owner.
	FromNode int `json:"fromNode"`

	// ToNode is the proposed new owner.
	ToNode int `json:"toNode"`
}
