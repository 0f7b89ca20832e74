// Package metrics provides MetricsCollector implementations for the cluster
// library.
package metrics

import "github.com/cool-japan/legalis-cluster/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Used as the default when no collector is
// configured, and embedded by partial implementations for interface coverage.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordDistribution discards the distribution record.
func (n *NopMetrics) RecordDistribution(_, _ int) {}

// SetNodeLoad discards the node load gauge update.
func (n *NopMetrics) SetNodeLoad(_ int, _ float64) {}

// SetPartitionCount discards the partition count gauge update.
func (n *NopMetrics) SetPartitionCount(_ int) {}

// IncMessageSent discards the sent message counter update.
func (n *NopMetrics) IncMessageSent(_ string) {}

// IncMessageReceived discards the received message counter update.
func (n *NopMetrics) IncMessageReceived(_ string) {}

// IncRebalanceCheck discards the rebalance check counter update.
func (n *NopMetrics) IncRebalanceCheck(_ bool) {}

// RecordRebalanceMoves discards the move plan size record.
func (n *NopMetrics) RecordRebalanceMoves(_ int) {}

// IncSnapshotPublish discards the snapshot publish counter update.
func (n *NopMetrics) IncSnapshotPublish(_ string) {}
