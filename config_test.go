package cluster

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cool-japan/legalis-cluster/balance"
	"github.com/cool-japan/legalis-cluster/partition"
	"github.com/cool-japan/legalis-cluster/types"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.NumNodes = 3

		require.NoError(t, cfg.Validate())
	})

	t.Run("zero node count fails", func(t *testing.T) {
		cfg := DefaultConfig()

		err := cfg.Validate()

		require.ErrorIs(t, err, types.ErrInvalidConfig)
		require.Contains(t, err.Error(), "numNodes")
	})

	t.Run("out of range thresholds fail", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.NumNodes = 2
		cfg.LoadThreshold = 1.5

		require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)

		cfg = DefaultConfig()
		cfg.NumNodes = 2
		cfg.MinImbalance = -0.1

		require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)
	})
}

func TestSetDefaults(t *testing.T) {
	cfg := Config{NumNodes: 4}

	SetDefaults(&cfg)

	require.Equal(t, 4, cfg.NumNodes)
	require.Equal(t, "node", cfg.AddressPrefix)
	require.Equal(t, balance.DefaultLoadThreshold, cfg.LoadThreshold)
	require.Equal(t, balance.DefaultMinImbalance, cfg.MinImbalance)
	require.Equal(t, "cluster-assignment", cfg.SnapshotBucket)
}

func TestConfig_YAML(t *testing.T) {
	t.Run("parses strategies by name", func(t *testing.T) {
		yamlConfig := `
numNodes: 5
addressPrefix: worker
partitionStrategy: hash
balanceStrategy: workStealing
loadThreshold: 0.7
minImbalance: 0.25
`
		var cfg Config
		err := yaml.Unmarshal([]byte(yamlConfig), &cfg)

		require.NoError(t, err)
		require.Equal(t, 5, cfg.NumNodes)
		require.Equal(t, "worker", cfg.AddressPrefix)
		require.Equal(t, partition.Hash, cfg.PartitionStrategy)
		require.Equal(t, balance.WorkStealing, cfg.BalanceStrategy)
		require.Equal(t, 0.7, cfg.LoadThreshold)
		require.Equal(t, 0.25, cfg.MinImbalance)
	})

	t.Run("rejects unknown strategy names", func(t *testing.T) {
		var cfg Config

		err := yaml.Unmarshal([]byte("partitionStrategy: fancy"), &cfg)

		require.Error(t, err)
	})

	t.Run("round trips through marshal", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.NumNodes = 2
		cfg.PartitionStrategy = partition.Range

		out, err := yaml.Marshal(&cfg)
		require.NoError(t, err)
		require.Contains(t, string(out), "partitionStrategy: range")

		var decoded Config
		require.NoError(t, yaml.Unmarshal(out, &decoded))
		require.Equal(t, cfg, decoded)
	})
}
