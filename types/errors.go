package types

import "errors"

// Sentinel errors for the cluster library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). All components use these sentinels for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Coordinator errors - Public API errors returned by the Coordinator.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNodeNotFound is returned when a node ID is out of range.
	ErrNodeNotFound = errors.New("node not found")
)

// Partition manager errors.
var (
	// ErrInvalidNodeCount is returned when partitioning is requested for zero
	// nodes. This is a caller programming error surfaced synchronously.
	ErrInvalidNodeCount = errors.New("node count must be positive")

	// ErrPartitionNotFound is returned when a partition ID is unknown.
	ErrPartitionNotFound = errors.New("partition not found")
)

// Transport errors.
var (
	// ErrTransportClosed is returned when operating on a closed transport.
	ErrTransportClosed = errors.New("transport closed")
)

// Snapshot publisher errors.
var (
	// ErrPublishFailed is returned when publishing a snapshot to the key-value
	// store fails.
	ErrPublishFailed = errors.New("failed to publish snapshot")

	// ErrSnapshotNotFound is returned when no snapshot has been published yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
