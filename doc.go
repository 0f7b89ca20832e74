// Package cluster provides partitioning and load-balancing coordination for
// distributing opaque units of work (entities) across a fixed set of worker
// nodes.
//
// The Coordinator is the orchestration facade. It owns a node registry, a
// partition manager, a message channel, and a load balancer, and exposes the
// operations that simulation and verification drivers use to distribute work,
// exchange control messages, and rebalance.
//
// # Quick Start
//
//	cfg := cluster.Config{
//	    NumNodes:          3,
//	    PartitionStrategy: partition.RoundRobin,
//	    BalanceStrategy:   balance.WorkStealing,
//	}
//
//	coord, err := cluster.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := coord.DistributeEntities(ctx, entityIDs); err != nil {
//	    log.Fatal(err)
//	}
//
//	moves, _ := coord.RebalanceIfNeeded()
//	if len(moves) > 0 {
//	    _ = coord.ApplyRebalance(ctx, moves)
//	}
//
// # Architecture
//
// The coordinator progresses through a small state machine:
//
//	Initialized → Distributing → Steady ⇄ Rebalancing
//
// Rebalancing is advisory by design: RebalanceIfNeeded computes a move plan
// without mutating anything, which keeps the balancer pure and testable. The
// caller executes the plan (ApplyRebalance is the provided executor) and the
// registry is informed of updated entity counts.
//
// # Key Properties
//
//   - Deterministic partitioning: the Hash strategy recomputes identical
//     placements across separate manager instances, so assignments survive a
//     coordinator restart without shared state.
//   - Transport-agnostic messaging: the message channel is an interface; the
//     in-memory queue stands in for a real transport, and a NATS-backed
//     implementation is provided as a drop-in substitute.
//   - No hidden concurrency: the coordinator spawns no goroutines; all
//     operations are synchronous calls serialized internally where needed.
//
// # Known Simplifications
//
//   - A broadcast message is consumed by the first receiving node, not fanned
//     out to all nodes. Production fan-out needs per-node cursors or copies.
//   - Barrier is a fire-and-forget broadcast, not a blocking barrier.
//   - The message queue is unbounded; a production transport must add
//     capacity limits and a backpressure or drop policy.
package cluster
