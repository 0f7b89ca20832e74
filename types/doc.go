// Package types provides core type definitions and interfaces for the cluster library.
//
// This package contains shared types that are used across multiple packages in the
// library. By keeping these types in a separate package, we avoid import cycles
// between the main cluster package and the component packages (partition, registry,
// balance, transport, snapshot).
//
// Key types:
//   - Node: Per-node cluster state (identity, rank, load, status)
//   - Partition: Ordered set of entity IDs owned by one node
//   - Move: Advisory rebalance instruction
//   - Message / Payload: Control messages exchanged between nodes
//   - ClusterState: Coordinator lifecycle state
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
//   - Transport: Node-to-node message channel abstraction
package types
