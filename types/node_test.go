package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_UpdateLoad(t *testing.T) {
	t.Run("computes normalized load", func(t *testing.T) {
		node := NewNode(1, "node-1", 1, 4)
		node.EntityCount = 5

		node.UpdateLoad(10)

		require.InDelta(t, 0.5, node.Load, 1e-9)
	})

	t.Run("clamps load at 1.0", func(t *testing.T) {
		node := NewNode(1, "node-1", 1, 4)
		node.EntityCount = 25

		node.UpdateLoad(10)

		require.Equal(t, 1.0, node.Load)
	})

	t.Run("leaves load unchanged when capacity is zero", func(t *testing.T) {
		node := NewNode(1, "node-1", 1, 4)
		node.EntityCount = 5
		node.Load = 0.3

		node.UpdateLoad(0)

		require.Equal(t, 0.3, node.Load)
	})
}

func TestNode_IsCoordinator(t *testing.T) {
	require.True(t, NewNode(0, "node-0", 0, 3).IsCoordinator())
	require.False(t, NewNode(1, "node-1", 1, 3).IsCoordinator())
}

func TestNodeStatus_String(t *testing.T) {
	cases := map[NodeStatus]string{
		NodeIdle:       "Idle",
		NodeActive:     "Active",
		NodeWaiting:    "Waiting",
		NodeFailed:     "Failed",
		NodeRecovering: "Recovering",
		NodeStatus(99): "Unknown",
	}
	for status, want := range cases {
		require.Equal(t, want, status.String())
	}
}
