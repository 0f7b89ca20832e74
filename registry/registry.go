// Package registry tracks the static and dynamic state of every node in the
// cluster.
//
// Nodes are created once when the cluster is sized and never destroyed during
// a run; a failed node is marked, not removed, so historical partition
// ownership remains traceable. All reads copy node values out, so callers can
// inspect snapshots without holding locks.
package registry

import (
	"fmt"
	"sync"

	"github.com/cool-japan/legalis-cluster/types"
)

// Registry holds per-node cluster state behind a single mutex.
type Registry struct {
	mu    sync.RWMutex
	nodes []types.Node
}

// New creates a registry with numNodes nodes. Node IDs and ranks run from 0 to
// numNodes-1; the node with rank 0 is the designated coordinator. Addresses
// are formed as "<addressPrefix>-<id>".
//
// Parameters:
//   - numNodes: Cluster size, assumed positive (validated by the coordinator)
//   - addressPrefix: Prefix for the opaque node address strings
//
// Returns:
//   - *Registry: Initialized registry with all nodes Idle at zero load
func New(numNodes int, addressPrefix string) *Registry {
	nodes := make([]types.Node, numNodes)
	for i := range nodes {
		nodes[i] = types.NewNode(i, fmt.Sprintf("%s-%d", addressPrefix, i), i, numNodes)
	}

	return &Registry{nodes: nodes}
}

// Len returns the number of nodes in the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.nodes)
}

// Get returns a copy of the node with the given ID. The boolean is false when
// the ID is out of range; hot-path lookups stay cheap without a hard error.
func (r *Registry) Get(nodeID int) (types.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if nodeID < 0 || nodeID >= len(r.nodes) {
		return types.Node{}, false
	}

	return r.nodes[nodeID], true
}

// Nodes returns a copy of all nodes in ID order.
func (r *Registry) Nodes() []types.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Node, len(r.nodes))
	copy(out, r.nodes)

	return out
}

// UpdateStatus sets the status of one node.
//
// Parameters:
//   - nodeID: Target node
//   - status: New status value
//
// Returns:
//   - error: types.ErrNodeNotFound when the ID is out of range
func (r *Registry) UpdateStatus(nodeID int, status types.NodeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if nodeID < 0 || nodeID >= len(r.nodes) {
		return fmt.Errorf("update status of node %d: %w", nodeID, types.ErrNodeNotFound)
	}
	r.nodes[nodeID].Status = status

	return nil
}

// AddEntities adjusts a node's entity count by delta, clamping at zero. A
// negative delta records entities moved away from the node.
//
// Returns:
//   - error: types.ErrNodeNotFound when the ID is out of range
func (r *Registry) AddEntities(nodeID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if nodeID < 0 || nodeID >= len(r.nodes) {
		return fmt.Errorf("add entities to node %d: %w", nodeID, types.ErrNodeNotFound)
	}

	count := r.nodes[nodeID].EntityCount + delta
	if count < 0 {
		count = 0
	}
	r.nodes[nodeID].EntityCount = count

	return nil
}

// UpdateLoads recomputes every node's load against the given per-node
// capacity. A non-positive capacity leaves all loads unchanged.
func (r *Registry) UpdateLoads(maxEntitiesPerNode int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.nodes {
		r.nodes[i].UpdateLoad(maxEntitiesPerNode)
	}
}
