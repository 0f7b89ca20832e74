package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cool-japan/legalis-cluster/types"
)

func TestNew(t *testing.T) {
	reg := New(3, "node")

	require.Equal(t, 3, reg.Len())

	nodes := reg.Nodes()
	require.Len(t, nodes, 3)
	for i, node := range nodes {
		require.Equal(t, i, node.ID)
		require.Equal(t, i, node.Rank)
		require.Equal(t, 3, node.TotalNodes)
		require.Equal(t, types.NodeIdle, node.Status)
		require.Zero(t, node.Load)
	}
	require.True(t, nodes[0].IsCoordinator())
	require.Equal(t, "node-2", nodes[2].Address)
}

func TestRegistry_Get(t *testing.T) {
	reg := New(2, "node")

	node, ok := reg.Get(1)
	require.True(t, ok)
	require.Equal(t, 1, node.ID)

	_, ok = reg.Get(2)
	require.False(t, ok)
	_, ok = reg.Get(-1)
	require.False(t, ok)
}

func TestRegistry_UpdateStatus(t *testing.T) {
	reg := New(2, "node")

	require.NoError(t, reg.UpdateStatus(1, types.NodeFailed))

	node, ok := reg.Get(1)
	require.True(t, ok)
	require.Equal(t, types.NodeFailed, node.Status)

	// Failed nodes are marked, never removed.
	require.Equal(t, 2, reg.Len())

	err := reg.UpdateStatus(5, types.NodeActive)
	require.ErrorIs(t, err, types.ErrNodeNotFound)
}

func TestRegistry_AddEntities(t *testing.T) {
	reg := New(2, "node")

	require.NoError(t, reg.AddEntities(0, 7))
	require.NoError(t, reg.AddEntities(0, -3))

	node, _ := reg.Get(0)
	require.Equal(t, 4, node.EntityCount)

	// Clamped at zero rather than going negative.
	require.NoError(t, reg.AddEntities(0, -10))
	node, _ = reg.Get(0)
	require.Zero(t, node.EntityCount)

	require.ErrorIs(t, reg.AddEntities(9, 1), types.ErrNodeNotFound)
}

func TestRegistry_UpdateLoads(t *testing.T) {
	reg := New(2, "node")
	require.NoError(t, reg.AddEntities(0, 5))
	require.NoError(t, reg.AddEntities(1, 20))

	reg.UpdateLoads(10)

	nodes := reg.Nodes()
	require.InDelta(t, 0.5, nodes[0].Load, 1e-9)
	require.Equal(t, 1.0, nodes[1].Load)

	// Zero capacity leaves loads untouched.
	reg.UpdateLoads(0)
	nodes = reg.Nodes()
	require.InDelta(t, 0.5, nodes[0].Load, 1e-9)
}

func TestRegistry_NodesReturnsCopies(t *testing.T) {
	reg := New(1, "node")

	nodes := reg.Nodes()
	nodes[0].EntityCount = 99

	fresh, _ := reg.Get(0)
	require.Zero(t, fresh.EntityCount)
}
