package partition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cool-japan/legalis-cluster/types"
)

func entityIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("e%d", i)
	}

	return ids
}

func TestManager_CreatePartitions(t *testing.T) {
	t.Run("fails on zero node count", func(t *testing.T) {
		mgr := NewManager(RoundRobin)

		_, err := mgr.CreatePartitions(entityIDs(4), 0)

		require.ErrorIs(t, err, types.ErrInvalidNodeCount)
	})

	t.Run("empty input yields N empty partitions", func(t *testing.T) {
		mgr := NewManager(RoundRobin)

		parts, err := mgr.CreatePartitions(nil, 3)

		require.NoError(t, err)
		require.Len(t, parts, 3)
		for i, p := range parts {
			require.Equal(t, i, p.NodeID)
			require.Zero(t, p.Size())
		}
	})

	t.Run("union of partitions equals input set", func(t *testing.T) {
		for _, strategy := range []Strategy{RoundRobin, Hash, Range, LoadBalanced, Geographic} {
			mgr := NewManager(strategy)
			ids := entityIDs(17)

			parts, err := mgr.CreatePartitions(ids, 5)
			require.NoError(t, err)
			require.Len(t, parts, 5)

			got := make(map[string]int)
			total := 0
			for _, p := range parts {
				total += p.Size()
				for _, id := range p.EntityIDs {
					got[id]++
				}
			}
			require.Equal(t, len(ids), total, "strategy %s", strategy)
			for _, id := range ids {
				require.Equal(t, 1, got[id], "strategy %s entity %s", strategy, id)
			}
		}
	})

	t.Run("round robin is maximally even", func(t *testing.T) {
		mgr := NewManager(RoundRobin)

		parts, err := mgr.CreatePartitions(entityIDs(12), 3)

		require.NoError(t, err)
		for _, p := range parts {
			require.Equal(t, 4, p.Size())
		}
	})

	t.Run("range produces contiguous non-decreasing blocks", func(t *testing.T) {
		mgr := NewManager(Range)
		ids := entityIDs(10)

		parts, err := mgr.CreatePartitions(ids, 3)
		require.NoError(t, err)

		// chunk = ceil(10/3) = 4, so blocks are 4, 4, 2.
		require.Equal(t, []string{"e0", "e1", "e2", "e3"}, parts[0].EntityIDs)
		require.Equal(t, []string{"e4", "e5", "e6", "e7"}, parts[1].EntityIDs)
		require.Equal(t, []string{"e8", "e9"}, parts[2].EntityIDs)

		prev := 0
		for i, id := range ids {
			owner, ok := mgr.GetPartition(id)
			require.True(t, ok)
			require.GreaterOrEqual(t, owner.NodeID, prev, "index %d", i)
			prev = owner.NodeID
		}
	})

	t.Run("hash placement is deterministic across managers", func(t *testing.T) {
		first := NewManager(Hash)
		second := NewManager(Hash)
		ids := entityIDs(50)

		_, err := first.CreatePartitions(ids, 7)
		require.NoError(t, err)
		_, err = second.CreatePartitions(ids, 7)
		require.NoError(t, err)

		for _, id := range ids {
			a, ok := first.GetPartition(id)
			require.True(t, ok)
			b, ok := second.GetPartition(id)
			require.True(t, ok)
			require.Equal(t, a.NodeID, b.NodeID, "entity %s", id)
		}
	})

	t.Run("partition IDs never collide across calls", func(t *testing.T) {
		mgr := NewManager(RoundRobin)

		first, err := mgr.CreatePartitions(entityIDs(6), 3)
		require.NoError(t, err)
		second, err := mgr.CreatePartitions([]string{"x0", "x1"}, 2)
		require.NoError(t, err)

		seen := make(map[uint64]bool)
		for _, p := range append(first, second...) {
			require.False(t, seen[p.ID], "duplicate partition ID %d", p.ID)
			seen[p.ID] = true
		}
		require.Equal(t, 5, mgr.PartitionCount())
	})

	t.Run("redistribution evicts entities from old partitions", func(t *testing.T) {
		mgr := NewManager(RoundRobin)

		first, err := mgr.CreatePartitions([]string{"a", "b", "c", "d"}, 2)
		require.NoError(t, err)
		_, err = mgr.CreatePartitions([]string{"a", "b", "c", "d"}, 2)
		require.NoError(t, err)

		for _, id := range []string{"a", "b", "c", "d"} {
			owner, ok := mgr.GetPartition(id)
			require.True(t, ok)
			require.NotEqual(t, first[0].ID, owner.ID)
			require.NotEqual(t, first[1].ID, owner.ID)
		}

		// The original partitions are drained but still tracked.
		old, ok := mgr.GetPartitionByID(first[0].ID)
		require.True(t, ok)
		require.Zero(t, old.Size())
	})
}

func TestManager_GetPartition(t *testing.T) {
	mgr := NewManager(RoundRobin)
	_, err := mgr.CreatePartitions([]string{"a"}, 1)
	require.NoError(t, err)

	_, ok := mgr.GetPartition("missing")
	require.False(t, ok)

	got, ok := mgr.GetPartition("a")
	require.True(t, ok)
	require.Equal(t, 0, got.NodeID)
}

func TestManager_Reassign(t *testing.T) {
	t.Run("moves partition ownership", func(t *testing.T) {
		mgr := NewManager(RoundRobin)
		parts, err := mgr.CreatePartitions(entityIDs(4), 2)
		require.NoError(t, err)

		require.NoError(t, mgr.Reassign(parts[0].ID, 1))

		moved, ok := mgr.GetPartitionByID(parts[0].ID)
		require.True(t, ok)
		require.Equal(t, 1, moved.NodeID)
		require.Len(t, mgr.GetNodePartitions(1), 2)
		require.Empty(t, mgr.GetNodePartitions(0))

		// Entities stay with their partition through the move.
		owner, ok := mgr.GetPartition(parts[0].EntityIDs[0])
		require.True(t, ok)
		require.Equal(t, parts[0].ID, owner.ID)
	})

	t.Run("unknown partition ID", func(t *testing.T) {
		mgr := NewManager(RoundRobin)

		err := mgr.Reassign(123, 0)

		require.ErrorIs(t, err, types.ErrPartitionNotFound)
	})
}

func TestEntityHash(t *testing.T) {
	// hash("ab") = 'a'*31 + 'b' = 97*31 + 98 = 3105
	require.Equal(t, uint64(3105), entityHash("ab"))
	require.Equal(t, uint64(0), entityHash(""))
	require.Equal(t, entityHash("statute-42"), entityHash("statute-42"))
}
