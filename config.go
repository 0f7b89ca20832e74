package cluster

import (
	"fmt"

	"github.com/cool-japan/legalis-cluster/balance"
	"github.com/cool-japan/legalis-cluster/partition"
	"github.com/cool-japan/legalis-cluster/types"
)

// Config is the configuration for the Coordinator.
//
// Strategy fields accept their string names in YAML ("roundRobin", "hash",
// "range", "loadBalanced", "geographic" and "none", "periodic", "dynamic",
// "workStealing").
type Config struct {
	// NumNodes is the cluster size. Required, must be positive; nodes are
	// created once at construction and never added or removed during a run.
	NumNodes int `yaml:"numNodes"`

	// AddressPrefix is the prefix for the opaque node address strings
	// (e.g., "node" produces "node-0", "node-1").
	AddressPrefix string `yaml:"addressPrefix"`

	// PartitionStrategy selects how entities are placed into partitions.
	PartitionStrategy partition.Strategy `yaml:"partitionStrategy"`

	// BalanceStrategy selects the rebalancing policy.
	BalanceStrategy balance.Strategy `yaml:"balanceStrategy"`

	// LoadThreshold is the per-node load ceiling for the Dynamic policy,
	// in (0, 1].
	LoadThreshold float64 `yaml:"loadThreshold"`

	// MinImbalance is the minimum load spread that justifies moving a
	// partition, in (0, 1]. Used by the WorkStealing policy and by move plan
	// computation for every policy.
	MinImbalance float64 `yaml:"minImbalance"`

	// SnapshotBucket names the JetStream KV bucket for assignment snapshots.
	// Only used by callers that construct a snapshot publisher; the
	// coordinator itself never opens connections.
	SnapshotBucket string `yaml:"snapshotBucket"`
}

// DefaultConfig returns a Config with sensible defaults. NumNodes is left at
// zero because the cluster size has no meaningful default; callers must set
// it.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		AddressPrefix:     "node",
		PartitionStrategy: partition.RoundRobin,
		BalanceStrategy:   balance.Dynamic,
		LoadThreshold:     balance.DefaultLoadThreshold,
		MinImbalance:      balance.DefaultMinImbalance,
		SnapshotBucket:    "cluster-assignment",
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.AddressPrefix == "" {
		cfg.AddressPrefix = defaults.AddressPrefix
	}
	if cfg.LoadThreshold == 0 {
		cfg.LoadThreshold = defaults.LoadThreshold
	}
	if cfg.MinImbalance == 0 {
		cfg.MinImbalance = defaults.MinImbalance
	}
	if cfg.SnapshotBucket == "" {
		cfg.SnapshotBucket = defaults.SnapshotBucket
	}
}

// Validate checks the configuration for invalid values.
//
// Returns:
//   - error: types.ErrInvalidConfig wrapped with the failing field, or nil
func (c *Config) Validate() error {
	if c.NumNodes <= 0 {
		return fmt.Errorf("%w: numNodes must be positive, got %d", types.ErrInvalidConfig, c.NumNodes)
	}
	if c.LoadThreshold <= 0 || c.LoadThreshold > 1 {
		return fmt.Errorf("%w: loadThreshold must be in (0, 1], got %v", types.ErrInvalidConfig, c.LoadThreshold)
	}
	if c.MinImbalance <= 0 || c.MinImbalance > 1 {
		return fmt.Errorf("%w: minImbalance must be in (0, 1], got %v", types.ErrInvalidConfig, c.MinImbalance)
	}

	return nil
}
