// Package balance decides when partition load should be rebalanced, and which
// partitions should move where.
//
// The Balancer is a pure decision component: it holds only its configuration
// and never mutates node or partition state. Its output is an advisory move
// plan; the caller executes moves and informs the registry of updated counts.
// This separation keeps the balancer trivially testable.
package balance

import (
	"fmt"
	"slices"

	"github.com/cool-japan/legalis-cluster/types"
)

// Strategy selects the rebalancing policy.
type Strategy int

const (
	// None never rebalances.
	None Strategy = iota

	// Periodic always reports that rebalancing is warranted; the caller
	// supplies the timing externally.
	Periodic

	// Dynamic rebalances when any node's load exceeds the load threshold.
	Dynamic

	// WorkStealing rebalances when the spread between the most and least
	// loaded nodes exceeds the minimum imbalance.
	WorkStealing
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case None:
		return "none"
	case Periodic:
		return "periodic"
	case Dynamic:
		return "dynamic"
	case WorkStealing:
		return "workStealing"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so strategies render as their
// string names in YAML and JSON configuration.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for configuration parsing.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*s = None
	case "periodic":
		*s = Periodic
	case "dynamic":
		*s = Dynamic
	case "workStealing":
		*s = WorkStealing
	default:
		return fmt.Errorf("unknown balance strategy %q", string(text))
	}

	return nil
}

// Default thresholds applied when a Balancer is constructed with non-positive
// values.
const (
	DefaultLoadThreshold = 0.8
	DefaultMinImbalance  = 0.2
)

// Balancer evaluates rebalancing policy against node state.
type Balancer struct {
	strategy      Strategy
	loadThreshold float64
	minImbalance  float64
}

// New creates a balancer.
//
// Parameters:
//   - strategy: Rebalancing policy
//   - loadThreshold: Per-node load ceiling for the Dynamic policy, in [0,1];
//     non-positive values select DefaultLoadThreshold
//   - minImbalance: Minimum load spread for the WorkStealing policy and the
//     per-move gap in CalculateRebalance, in [0,1]; non-positive values select
//     DefaultMinImbalance
//
// Returns:
//   - *Balancer: Initialized balancer
func New(strategy Strategy, loadThreshold, minImbalance float64) *Balancer {
	if loadThreshold <= 0 {
		loadThreshold = DefaultLoadThreshold
	}
	if minImbalance <= 0 {
		minImbalance = DefaultMinImbalance
	}

	return &Balancer{
		strategy:      strategy,
		loadThreshold: loadThreshold,
		minImbalance:  minImbalance,
	}
}

// Strategy returns the policy selected at construction.
func (b *Balancer) Strategy() Strategy {
	return b.strategy
}

// NeedsRebalancing reports whether the configured policy warrants a rebalance
// for the given node loads. Returns false immediately for an empty node list.
func (b *Balancer) NeedsRebalancing(nodes []types.Node) bool {
	if len(nodes) == 0 {
		return false
	}

	switch b.strategy {
	case None:
		return false
	case Periodic:
		return true
	case Dynamic:
		return maxLoad(nodes) > b.loadThreshold
	case WorkStealing:
		return maxLoad(nodes)-minLoad(nodes) > b.minImbalance
	default:
		return false
	}
}

// CalculateRebalance computes an advisory move plan for the given cluster
// state. It never mutates nodes or partitions.
//
// The plan is a single greedy pass: nodes above the mean load donate owned
// partitions, in partition-list order, to nodes below the mean in ascending
// load order. Each qualifying partition consumes one underloaded recipient.
// Loads are not recomputed mid-pass, so the output is a heuristic plan, not a
// guaranteed-optimal assignment.
//
// Parameters:
//   - nodes: Current node snapshots
//   - partitions: Current partition list in creation order
//
// Returns:
//   - []types.Move: Advisory moves; empty with fewer than 2 nodes or no
//     partitions
func (b *Balancer) CalculateRebalance(nodes []types.Node, partitions []types.Partition) []types.Move {
	if len(nodes) < 2 || len(partitions) == 0 {
		return nil
	}

	var sum float64
	for _, n := range nodes {
		sum += n.Load
	}
	avg := sum / float64(len(nodes))

	var overloaded, underloaded []types.Node
	for _, n := range nodes {
		switch {
		case n.Load > avg:
			overloaded = append(overloaded, n)
		case n.Load < avg:
			underloaded = append(underloaded, n)
		}
	}
	slices.SortFunc(overloaded, func(a, b types.Node) int {
		switch {
		case a.Load > b.Load:
			return -1
		case a.Load < b.Load:
			return 1
		default:
			return a.ID - b.ID
		}
	})
	slices.SortFunc(underloaded, func(a, b types.Node) int {
		switch {
		case a.Load < b.Load:
			return -1
		case a.Load > b.Load:
			return 1
		default:
			return a.ID - b.ID
		}
	})

	byNode := make(map[int][]types.Partition, len(nodes))
	for _, p := range partitions {
		byNode[p.NodeID] = append(byNode[p.NodeID], p)
	}

	var moves []types.Move
	next := 0
	for _, src := range overloaded {
		if next >= len(underloaded) {
			break
		}
		for _, part := range byNode[src.ID] {
			if next >= len(underloaded) {
				break
			}
			if src.Load-underloaded[next].Load > b.minImbalance {
				moves = append(moves, types.Move{
					PartitionID: part.ID,
					FromNode:    src.ID,
					ToNode:      underloaded[next].ID,
				})
				next++
			}
		}
	}

	return moves
}

func maxLoad(nodes []types.Node) float64 {
	load := nodes[0].Load
	for _, n := range nodes[1:] {
		if n.Load > load {
			load = n.Load
		}
	}

	return load
}

func minLoad(nodes []types.Node) float64 {
	load := nodes[0].Load
	for _, n := range nodes[1:] {
		if n.Load < load {
			load = n.Load
		}
	}

	return load
}
