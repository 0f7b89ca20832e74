package types

// MetricsCollector defines the observability hooks recorded by the coordinator
// and its components.
//
// Implementations must be safe for concurrent use. A no-op implementation is
// used when no collector is configured, so callers never need nil checks.
type MetricsCollector interface {
	// RecordDistribution records a completed entity distribution.
	RecordDistribution(entities, nodes int)

	// SetNodeLoad records the current normalized load of a node.
	SetNodeLoad(nodeID int, load float64)

	// SetPartitionCount records the current number of tracked partitions.
	SetPartitionCount(count int)

	// IncMessageSent counts an outbound message by payload kind.
	IncMessageSent(kind string)

	// IncMessageReceived counts a consumed message by payload kind.
	IncMessageReceived(kind string)

	// IncRebalanceCheck counts a rebalance policy evaluation and whether it
	// triggered plan computation.
	IncRebalanceCheck(triggered bool)

	// RecordRebalanceMoves records the size of a computed rebalance plan.
	RecordRebalanceMoves(moves int)

	// IncSnapshotPublish counts a snapshot publication attempt by outcome
	// ("success" or "failure").
	IncSnapshotPublish(result string)
}
