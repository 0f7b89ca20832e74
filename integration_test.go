package cluster_test

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	cluster "github.com/cool-japan/legalis-cluster"
	"github.com/cool-japan/legalis-cluster/balance"
	"github.com/cool-japan/legalis-cluster/partition"
	"github.com/cool-japan/legalis-cluster/snapshot"
	clustertesting "github.com/cool-japan/legalis-cluster/testing"
	"github.com/cool-japan/legalis-cluster/transport"
	"github.com/cool-japan/legalis-cluster/types"
)

// Exercises a full verification-run setup against an embedded NATS server:
// messaging over the NATS transport and assignment snapshots in a JetStream
// KV bucket.
func TestCoordinator_NATSIntegration(t *testing.T) {
	_, nc := clustertesting.StartEmbeddedNATS(t)
	ctx := context.Background()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	pub, err := snapshot.NewPublisher(ctx, js, "cluster-assignment", clustertesting.NewTestLogger(t))
	require.NoError(t, err)

	tr, err := transport.NewNATS(nc, "legalis.cluster", []int{0, 1, 2}, clustertesting.NewTestLogger(t))
	require.NoError(t, err)
	defer tr.Close()

	cfg := &cluster.Config{
		NumNodes:          3,
		PartitionStrategy: partition.Hash,
		BalanceStrategy:   balance.Dynamic,
	}
	coord, err := cluster.New(cfg,
		cluster.WithTransport(tr),
		cluster.WithSnapshotPublisher(pub),
		cluster.WithLogger(clustertesting.NewTestLogger(t)),
	)
	require.NoError(t, err)

	ids := []string{"gdpr-art-6", "gdpr-art-17", "ccpa-1798", "hipaa-164", "sox-404", "pci-dss-3"}
	require.NoError(t, coord.DistributeEntities(ctx, ids))

	t.Run("snapshot lands in the KV bucket", func(t *testing.T) {
		snap, err := pub.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, coord.SnapshotVersion(), snap.Version)
		require.Len(t, snap.Partitions, 3)
		require.NotEmpty(t, snap.Fingerprint)

		total := 0
		for _, part := range snap.Partitions {
			total += part.Size()
		}
		require.Equal(t, len(ids), total)
	})

	t.Run("checkpoint round trip over NATS", func(t *testing.T) {
		_, err := coord.SendMessage(nil, types.CheckpointPayload(coord.SnapshotVersion()))
		require.NoError(t, err)

		msg, ok := receiveEventually(t, tr, 1)
		require.True(t, ok)
		require.Equal(t, types.PayloadCheckpoint, msg.Payload.Kind)
		require.Equal(t, coord.SnapshotVersion(), msg.Payload.SnapshotVersion)

		// Verify the checkpointed version matches the stored snapshot.
		snap, err := pub.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, msg.Payload.SnapshotVersion, snap.Version)
	})

	t.Run("applied rebalance publishes a new version", func(t *testing.T) {
		before := coord.SnapshotVersion()

		part := coord.GetNodePartitions(1)
		require.NotEmpty(t, part)
		moves := []types.Move{{PartitionID: part[0].ID, FromNode: 1, ToNode: 2}}
		require.NoError(t, coord.ApplyRebalance(ctx, moves))

		snap, err := pub.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, before+1, snap.Version)
	})
}

// receiveEventually polls the transport until a message for nodeID arrives or
// the deadline passes. NATS delivery is asynchronous, so a single non-blocking
// Receive right after Send can legitimately come up empty.
func receiveEventually(t *testing.T, tr *transport.NATS, nodeID int) (types.Message, bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msg, ok := tr.Receive(nodeID); ok {
			return msg, true
		}
		time.Sleep(5 * time.Millisecond)
	}

	return types.Message{}, false
}
