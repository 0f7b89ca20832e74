package types

import "context"

// Snapshot is a versioned record of the cluster's partition assignment,
// published for external observers (verification drivers, dashboards).
//
// Snapshots are observability output only; the coordinator never reads them
// back to rebuild state, and no durability across restarts is implied.
type Snapshot struct {
	// Version is a monotonically increasing snapshot version, starting at 1
	// for the first publication of a coordinator instance.
	Version int64 `json:"version"`

	// Timestamp is seconds since epoch at publication time.
	Timestamp int64 `json:"timestamp"`

	// Partitions is the full partition layout at publication time.
	Partitions []Partition `json:"partitions"`

	// Fingerprint is a stable hash of the canonical partition layout, filled
	// in by the publisher. Two snapshots with equal fingerprints describe the
	// same assignment regardless of version.
	Fingerprint string `json:"fingerprint"`
}

// SnapshotPublisher publishes assignment snapshots for external observers.
type SnapshotPublisher interface {
	// Publish stores the snapshot, overwriting any previous one.
	Publish(ctx context.Context, snap Snapshot) error

	// Load returns the most recently published snapshot, or
	// ErrSnapshotNotFound if none has been published.
	Load(ctx context.Context) (Snapshot, error)
}
