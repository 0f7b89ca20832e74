package cluster

import "github.com/cool-japan/legalis-cluster/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing the component
// packages (partition, registry, balance, transport, snapshot) to depend on
// `types` without depending on the root `cluster` package, while still
// providing a convenient `cluster.Node`, `cluster.Message`, etc. for users.
type (
	Node         = types.Node
	NodeStatus   = types.NodeStatus
	Partition    = types.Partition
	Move         = types.Move
	Message      = types.Message
	Payload      = types.Payload
	PayloadKind  = types.PayloadKind
	Metrics      = types.Metrics
	ClusterState = types.ClusterState
	Snapshot     = types.Snapshot
)

// Re-export interfaces from the types package for convenience.
type (
	Logger            = types.Logger
	MetricsCollector  = types.MetricsCollector
	Transport         = types.Transport
	SnapshotPublisher = types.SnapshotPublisher
)

// Re-export node status constants.
const (
	NodeIdle       = types.NodeIdle
	NodeActive     = types.NodeActive
	NodeWaiting    = types.NodeWaiting
	NodeFailed     = types.NodeFailed
	NodeRecovering = types.NodeRecovering
)

// Re-export coordinator state constants.
const (
	StateInitialized  = types.StateInitialized
	StateDistributing = types.StateDistributing
	StateSteady       = types.StateSteady
	StateRebalancing  = types.StateRebalancing
)

// Re-export payload kind constants.
const (
	PayloadBarrier      = types.PayloadBarrier
	PayloadEntityData   = types.PayloadEntityData
	PayloadResults      = types.PayloadResults
	PayloadLoadBalance  = types.PayloadLoadBalance
	PayloadCheckpoint   = types.PayloadCheckpoint
	PayloadStatusUpdate = types.PayloadStatusUpdate
	PayloadCustom       = types.PayloadCustom
)
