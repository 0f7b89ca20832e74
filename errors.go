package cluster

import "github.com/cool-japan/legalis-cluster/types"

// Sentinel errors returned by the Coordinator, re-exported from the types
// package so errors.Is checks work with either import path.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrInvalidNodeCount is returned when partitioning is requested for zero
	// nodes.
	ErrInvalidNodeCount = types.ErrInvalidNodeCount

	// ErrNodeNotFound is returned when a node ID is out of range.
	ErrNodeNotFound = types.ErrNodeNotFound

	// ErrPartitionNotFound is returned when a partition ID is unknown.
	ErrPartitionNotFound = types.ErrPartitionNotFound

	// ErrSnapshotNotFound is returned when no snapshot has been published.
	ErrSnapshotNotFound = types.ErrSnapshotNotFound
)
