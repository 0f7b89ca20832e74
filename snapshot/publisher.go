// Package snapshot publishes versioned partition assignment snapshots to a
// NATS JetStream key-value bucket.
//
// Snapshots let external observers (verification drivers, dashboards) follow
// the coordinator's current assignment without calling into its process. They
// are observability output only: the coordinator never reads them back to
// rebuild state, and no durability across restarts is implied.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zeebo/xxh3"

	"github.com/cool-japan/legalis-cluster/internal/kvutil"
	"github.com/cool-japan/legalis-cluster/internal/logging"
	"github.com/cool-japan/legalis-cluster/types"
)

// DefaultKey is the KV key under which the latest snapshot is stored.
const DefaultKey = "assignment"

// Publisher stores assignment snapshots in a JetStream KV bucket, overwriting
// the previous snapshot on each publication.
type Publisher struct {
	kv     jetstream.KeyValue
	key    string
	logger types.Logger
}

// Compile-time assertion that Publisher implements SnapshotPublisher.
var _ types.SnapshotPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher backed by the given bucket, creating the
// bucket if it does not exist yet.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - bucket: KV bucket name
//   - logger: Structured logger, nil for no logging
//
// Returns:
//   - *Publisher: Initialized publisher
//   - error: Bucket creation/open failure
func NewPublisher(ctx context.Context, js jetstream.JetStream, bucket string, logger types.Logger) (*Publisher, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "cluster assignment snapshots",
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("ensure snapshot bucket: %w", err)
	}

	return &Publisher{kv: kv, key: DefaultKey, logger: logger}, nil
}

// Publish stores the snapshot, filling in its layout fingerprint first.
//
// Returns:
//   - error: types.ErrPublishFailed wrapping the underlying KV error
func (p *Publisher) Publish(ctx context.Context, snap types.Snapshot) error {
	snap.Fingerprint = Fingerprint(snap.Partitions)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: marshal snapshot: %w", types.ErrPublishFailed, err)
	}

	if _, err := p.kv.Put(ctx, p.key, data); err != nil {
		return fmt.Errorf("%w: %w", types.ErrPublishFailed, err)
	}

	p.logger.Debug("snapshot published",
		"version", snap.Version,
		"partitions", len(snap.Partitions),
		"fingerprint", snap.Fingerprint,
	)

	return nil
}

// Load returns the most recently published snapshot.
//
// Returns:
//   - types.Snapshot: The stored snapshot
//   - error: types.ErrSnapshotNotFound when nothing has been published yet
func (p *Publisher) Load(ctx context.Context) (types.Snapshot, error) {
	entry, err := p.kv.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return types.Snapshot{}, types.ErrSnapshotNotFound
		}

		return types.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(entry.Value(), &snap); err != nil {
		return types.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	return snap, nil
}

// Fingerprint computes a stable xxh3 hash of the canonical partition layout.
// Two layouts with identical partition IDs, owners, and entity lists in the
// same order produce the same fingerprint regardless of snapshot version or
// timestamp.
//
// Parameters:
//   - partitions: Partition layout in creation order
//
// Returns:
//   - string: Fixed-width lowercase hex digest
func Fingerprint(partitions []types.Partition) string {
	var b strings.Builder
	for _, p := range partitions {
		b.WriteString(strconv.FormatUint(p.ID, 10))
		b.WriteByte('@')
		b.WriteString(strconv.Itoa(p.NodeID))
		b.WriteByte(':')
		for _, id := range p.EntityIDs {
			b.WriteString(id)
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}

	return fmt.Sprintf("%016x", xxh3.HashString(b.String()))
}
