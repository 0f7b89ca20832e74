package cluster

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cool-japan/legalis-cluster/balance"
	"github.com/cool-japan/legalis-cluster/internal/logging"
	"github.com/cool-japan/legalis-cluster/internal/metrics"
	"github.com/cool-japan/legalis-cluster/partition"
	"github.com/cool-japan/legalis-cluster/registry"
	"github.com/cool-japan/legalis-cluster/transport"
	"github.com/cool-japan/legalis-cluster/types"
)

// coordinatorNodeID is the distinguished coordinator node. Rank 0 is assigned
// at construction, never elected.
const coordinatorNodeID = 0

// Coordinator orchestrates partitioning, messaging, and load balancing for a
// fixed set of worker nodes.
//
// The Coordinator exclusively owns its node registry, partition manager, and
// message channel for its lifetime; none of these are shared across
// coordinator instances, and there is no package-level mutable state. Tests
// running clusters in parallel construct independent Coordinators.
//
// Thread Safety:
//   - All public methods are safe for concurrent use.
//   - Registry and partition mutations are serialized by a single mutex.
//   - Read accessors return copied snapshots, never internal references.
//
// Lifecycle:
//
//	StateInitialized → StateDistributing → StateSteady ⇄ StateRebalancing
//
// There is no terminal state; the coordinator lives for the duration of the
// simulation or verification run. Rebalancing is advisory: RebalanceIfNeeded
// reports what should move and the caller executes the plan (ApplyRebalance
// is the library-provided executor).
type Coordinator struct {
	cfg Config

	registry   *registry.Registry
	partitions *partition.Manager
	balancer   *balance.Balancer
	channel    types.Transport
	publisher  types.SnapshotPublisher

	logger  types.Logger
	metrics types.MetricsCollector

	state           atomic.Int32 // types.ClusterState
	snapshotVersion atomic.Int64

	// mu serializes registry and partition mutations across
	// DistributeEntities, RebalanceIfNeeded, and ApplyRebalance.
	mu sync.Mutex

	// entitiesPerNode is the capacity denominator from the last distribution,
	// reused when loads are recomputed after applied moves. Guarded by mu.
	entitiesPerNode int
}

// New creates a Coordinator for cfg.NumNodes nodes with ranks 0..NumNodes-1.
//
// Parameters:
//   - cfg: Cluster configuration; defaults are filled in for missing values
//   - opts: Optional dependencies (transport, snapshot publisher, metrics,
//     logger)
//
// Returns:
//   - *Coordinator: Initialized coordinator in StateInitialized
//   - error: types.ErrInvalidConfig when cfg is nil or invalid
//
// Example:
//
//	cfg := cluster.Config{NumNodes: 3, PartitionStrategy: partition.Hash}
//	coord, err := cluster.New(&cfg, cluster.WithLogger(logger))
func New(cfg *Config, opts ...Option) (*Coordinator, error) {
	if cfg == nil {
		return nil, types.ErrInvalidConfig
	}

	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &coordinatorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Safe defaults for optional dependencies avoid nil checks everywhere.
	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}
	channel := options.transport
	if channel == nil {
		channel = transport.NewMemory()
	}

	c := &Coordinator{
		cfg:        *cfg,
		registry:   registry.New(cfg.NumNodes, cfg.AddressPrefix),
		partitions: partition.NewManager(cfg.PartitionStrategy),
		balancer:   balance.New(cfg.BalanceStrategy, cfg.LoadThreshold, cfg.MinImbalance),
		channel:    channel,
		publisher:  options.publisher,
		logger:     loggerInstance,
		metrics:    metricsCollector,
	}
	c.state.Store(int32(types.StateInitialized))

	c.logger.Info("coordinator created",
		"nodes", cfg.NumNodes,
		"partitionStrategy", cfg.PartitionStrategy.String(),
		"balanceStrategy", cfg.BalanceStrategy.String(),
	)

	return c, nil
}

// DistributeEntities splits entityIDs into one partition per node and updates
// every node's entity count and load.
//
// The per-node capacity is len(entityIDs)/NumNodes using integer division;
// with fewer entities than nodes the capacity is zero and all loads stay 0,
// which is a documented edge case rather than an error.
//
// Parameters:
//   - ctx: Context for the optional snapshot publication
//   - entityIDs: Opaque entity identifiers to distribute
//
// Returns:
//   - error: Partition creation failure (only possible when the node count is
//     zero, which construction already prevents but is still checked)
func (c *Coordinator) DistributeEntities(ctx context.Context, entityIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Store(int32(types.StateDistributing))

	parts, err := c.partitions.CreatePartitions(entityIDs, c.cfg.NumNodes)
	if err != nil {
		c.state.Store(int32(types.StateInitialized))

		return fmt.Errorf("distribute entities: %w", err)
	}

	for _, part := range parts {
		// Node IDs come from the partition manager's 0..NumNodes-1 indexing,
		// so the registry lookup cannot fail here.
		_ = c.registry.AddEntities(part.NodeID, part.Size())
	}

	c.entitiesPerNode = len(entityIDs) / c.cfg.NumNodes
	c.registry.UpdateLoads(c.entitiesPerNode)

	c.metrics.RecordDistribution(len(entityIDs), c.cfg.NumNodes)
	c.metrics.SetPartitionCount(c.partitions.PartitionCount())
	for _, node := range c.registry.Nodes() {
		c.metrics.SetNodeLoad(node.ID, node.Load)
	}

	c.state.Store(int32(types.StateSteady))

	c.logger.Info("entities distributed",
		"entities", len(entityIDs),
		"nodes", c.cfg.NumNodes,
		"entitiesPerNode", c.entitiesPerNode,
	)

	c.publishSnapshotLocked(ctx)

	return nil
}

// SendMessage sends a message originating from the coordinator's own node
// (node 0). A nil destination broadcasts.
//
// Returns:
//   - uint64: The transport-assigned message ID
//   - error: Always nil with the built-in transports; kept in the signature
//     for substituted transports with send-side failure modes
func (c *Coordinator) SendMessage(destination *int, payload types.Payload) (uint64, error) {
	id := c.channel.Send(coordinatorNodeID, destination, payload)
	c.metrics.IncMessageSent(payload.Kind.String())

	return id, nil
}

// ReceiveMessage receives the next message addressed to the coordinator node
// or broadcast. It never blocks; ok is false when nothing is queued.
func (c *Coordinator) ReceiveMessage() (types.Message, bool) {
	msg, ok := c.channel.Receive(coordinatorNodeID)
	if ok {
		c.metrics.IncMessageReceived(msg.Payload.Kind.String())
	}

	return msg, ok
}

// Barrier broadcasts a barrier payload to all nodes.
//
// This is a signal, not a synchronization primitive: it does NOT block
// waiting for acknowledgements. True barrier semantics would require a
// distinct acknowledgement-counting mechanism on top of the message channel.
func (c *Coordinator) Barrier() error {
	_, err := c.SendMessage(nil, types.BarrierPayload())

	return err
}

// RebalanceIfNeeded consults the load balancer against current node state and
// returns an advisory move plan when the configured policy warrants one.
//
// The plan is a report of what should move; the coordinator does not move
// entities itself. A LoadBalance broadcast is emitted as a notification side
// effect whenever a plan is computed, even an empty one.
//
// Returns:
//   - []types.Move: Advisory moves; empty when no rebalance is warranted
//   - error: Always nil with the built-in components; kept for substituted
//     transports
func (c *Coordinator) RebalanceIfNeeded() ([]types.Move, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nodes := c.registry.Nodes()
	triggered := c.balancer.NeedsRebalancing(nodes)
	c.metrics.IncRebalanceCheck(triggered)
	if !triggered {
		return nil, nil
	}

	c.state.Store(int32(types.StateRebalancing))
	moves := c.balancer.CalculateRebalance(nodes, c.partitions.Partitions())
	c.state.Store(int32(types.StateSteady))

	if _, err := c.SendMessage(nil, types.LoadBalancePayload()); err != nil {
		return moves, err
	}
	c.metrics.RecordRebalanceMoves(len(moves))

	c.logger.Info("rebalance plan computed", "moves", len(moves))

	return moves, nil
}

// ApplyRebalance executes an advisory move plan: each partition is reassigned
// to its target node, entity counts are shifted accordingly, and loads are
// recomputed against the capacity from the last distribution.
//
// Moves referencing unknown partitions fail the whole call before any
// remaining moves are applied; already-applied moves are not rolled back, so
// callers should treat a failed apply as a reason to redistribute.
//
// Parameters:
//   - ctx: Context for the optional snapshot publication
//   - moves: Plan produced by RebalanceIfNeeded (or built by the caller)
//
// Returns:
//   - error: types.ErrPartitionNotFound wrapped with the failing move
func (c *Coordinator) ApplyRebalance(ctx context.Context, moves []types.Move) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Store(int32(types.StateRebalancing))
	defer c.state.Store(int32(types.StateSteady))

	for _, move := range moves {
		part, ok := c.partitions.GetPartitionByID(move.PartitionID)
		if !ok {
			return fmt.Errorf("apply move of partition %d: %w", move.PartitionID, types.ErrPartitionNotFound)
		}
		if err := c.partitions.Reassign(move.PartitionID, move.ToNode); err != nil {
			return fmt.Errorf("apply rebalance: %w", err)
		}

		_ = c.registry.AddEntities(move.FromNode, -part.Size())
		_ = c.registry.AddEntities(move.ToNode, part.Size())
	}

	c.registry.UpdateLoads(c.entitiesPerNode)
	for _, node := range c.registry.Nodes() {
		c.metrics.SetNodeLoad(node.ID, node.Load)
	}

	c.logger.Info("rebalance applied", "moves", len(moves))

	c.publishSnapshotLocked(ctx)

	return nil
}

// UpdateNodeStatus sets the status of one node.
//
// Returns:
//   - error: types.ErrNodeNotFound when nodeID is out of range
func (c *Coordinator) UpdateNodeStatus(nodeID int, status types.NodeStatus) error {
	if err := c.registry.UpdateStatus(nodeID, status); err != nil {
		return err
	}

	c.logger.Debug("node status updated", "nodeId", nodeID, "status", status.String())

	return nil
}

// GetNode returns a copy of the node with the given ID.
func (c *Coordinator) GetNode(nodeID int) (types.Node, bool) {
	return c.registry.Get(nodeID)
}

// Nodes returns a copy of all nodes in ID order.
func (c *Coordinator) Nodes() []types.Node {
	return c.registry.Nodes()
}

// NumNodes returns the cluster size.
func (c *Coordinator) NumNodes() int {
	return c.cfg.NumNodes
}

// GetPartition returns the partition currently owning entityID.
func (c *Coordinator) GetPartition(entityID string) (types.Partition, bool) {
	return c.partitions.GetPartition(entityID)
}

// GetNodePartitions returns the partitions owned by nodeID in creation order.
func (c *Coordinator) GetNodePartitions(nodeID int) []types.Partition {
	return c.partitions.GetNodePartitions(nodeID)
}

// PartitionCount returns the number of tracked partitions.
func (c *Coordinator) PartitionCount() int {
	return c.partitions.PartitionCount()
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() types.ClusterState {
	return types.ClusterState(c.state.Load())
}

// SnapshotVersion returns the version of the most recently published
// snapshot, or 0 when none has been published.
func (c *Coordinator) SnapshotVersion() int64 {
	return c.snapshotVersion.Load()
}

// publishSnapshotLocked publishes the current assignment to the configured
// publisher. Best effort: failures are logged and counted, never propagated,
// since snapshots are observability output. Caller holds c.mu.
func (c *Coordinator) publishSnapshotLocked(ctx context.Context) {
	if c.publisher == nil {
		return
	}

	snap := types.Snapshot{
		Version:    c.snapshotVersion.Add(1),
		Timestamp:  time.Now().Unix(),
		Partitions: c.partitions.Partitions(),
	}
	if err := c.publisher.Publish(ctx, snap); err != nil {
		c.metrics.IncSnapshotPublish("failure")
		c.logger.Warn("snapshot publish failed", "version", snap.Version, "error", err)

		return
	}
	c.metrics.IncSnapshotPublish("success")
}
