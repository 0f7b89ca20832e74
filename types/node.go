package types

// NodeStatus represents the health and activity state of a cluster node.
type NodeStatus int

const (
	// NodeIdle indicates the node holds no active work.
	NodeIdle NodeStatus = iota

	// NodeActive indicates the node is processing assigned entities.
	NodeActive

	// NodeWaiting indicates the node is blocked on a control message or barrier.
	NodeWaiting

	// NodeFailed indicates the node is considered unavailable. Failed nodes are
	// marked, never removed, so historical partition ownership stays traceable.
	NodeFailed

	// NodeRecovering indicates the node is rejoining after a failure.
	NodeRecovering
)

// String returns the string representation of the status.
func (s NodeStatus) String() string {
	switch s {
	case NodeIdle:
		return "Idle"
	case NodeActive:
		return "Active"
	case NodeWaiting:
		return "Waiting"
	case NodeFailed:
		return "Failed"
	case NodeRecovering:
		return "Recovering"
	default:
		return "Unknown"
	}
}

// Node is a logical worker slot tracked by the coordinator. It may or may not
// correspond to a real process or machine; the coordinator only reasons about
// its identity, load, and status.
//
// Load is always recomputed via UpdateLoad, never set directly by callers.
type Node struct {
	// ID uniquely identifies the node. Stable for the process lifetime.
	ID int `json:"id"`

	// Address is an opaque endpoint string, unused by coordination logic.
	Address string `json:"address"`

	// Rank is the node's position in the cluster. Rank 0 marks the designated
	// coordinator node; it is assigned at construction, never elected.
	Rank int `json:"rank"`

	// TotalNodes is the cluster size at creation time.
	TotalNodes int `json:"totalNodes"`

	// Load is the normalized work load in [0.0, 1.0].
	Load float64 `json:"load"`

	// EntityCount is the number of entities currently assigned to the node.
	EntityCount int `json:"entityCount"`

	// Status is the node's current health/activity state.
	Status NodeStatus `json:"status"`
}

// NewNode creates a node with zero load and Idle status.
//
// Parameters:
//   - id: Unique node identifier
//   - address: Opaque endpoint string
//   - rank: Cluster rank (0 = designated coordinator)
//   - totalNodes: Cluster size at creation time
//
// Returns:
//   - Node: Initialized node value
func NewNode(id int, address string, rank, totalNodes int) Node {
	return Node{
		ID:         id,
		Address:    address,
		Rank:       rank,
		TotalNodes: totalNodes,
		Status:     NodeIdle,
	}
}

// UpdateLoad recomputes Load from EntityCount as
// min(1.0, entityCount/maxEntitiesPerNode).
//
// When maxEntitiesPerNode is zero or negative the load is left unchanged; this
// covers the fewer-entities-than-nodes edge case where per-node capacity is
// unknown.
//
// Parameters:
//   - maxEntitiesPerNode: Capacity used as the load denominator
func (n *Node) UpdateLoad(maxEntitiesPerNode int) {
	if maxEntitiesPerNode <= 0 {
		return
	}

	load := float64(n.EntityCount) / float64(maxEntitiesPerNode)
	if load > 1.0 {
		load = 1.0
	}
	n.Load = load
}

// IsCoordinator reports whether the node is the designated coordinator.
//
// This is a naming convenience over rank, not a distributed-consensus property:
// exactly one node is created with rank 0 and it is never re-elected.
//
// Returns:
//   - bool: true if the node's rank is 0
func (n Node) IsCoordinator() bool {
	return n.Rank == 0
}
