package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessage_MatchesNode(t *testing.T) {
	t.Run("broadcast matches every node", func(t *testing.T) {
		msg := Message{ID: 1, Source: 0, Payload: BarrierPayload()}

		require.True(t, msg.IsBroadcast())
		require.True(t, msg.MatchesNode(0))
		require.True(t, msg.MatchesNode(7))
	})

	t.Run("targeted message matches only its destination", func(t *testing.T) {
		dest := 2
		msg := Message{ID: 1, Source: 0, Destination: &dest, Payload: BarrierPayload()}

		require.False(t, msg.IsBroadcast())
		require.True(t, msg.MatchesNode(2))
		require.False(t, msg.MatchesNode(1))
	})
}

func TestPayload_Constructors(t *testing.T) {
	t.Run("results payload copies metrics", func(t *testing.T) {
		m := Metrics{RulesEvaluated: 120, Violations: 3, ElapsedSeconds: 1.5}
		p := ResultsPayload(m)

		require.Equal(t, PayloadResults, p.Kind)
		require.NotNil(t, p.Metrics)
		require.Equal(t, int64(120), p.Metrics.RulesEvaluated)

		// Mutating the original must not leak into the payload.
		m.Violations = 99
		require.Equal(t, int64(3), p.Metrics.Violations)
	})

	t.Run("checkpoint payload carries snapshot version", func(t *testing.T) {
		p := CheckpointPayload(42)

		require.Equal(t, PayloadCheckpoint, p.Kind)
		require.Equal(t, int64(42), p.SnapshotVersion)
	})

	t.Run("status update payload carries status", func(t *testing.T) {
		p := StatusUpdatePayload(NodeFailed)

		require.Equal(t, PayloadStatusUpdate, p.Kind)
		require.Equal(t, NodeFailed, p.Status)
	})
}

func TestMessage_JSONBroadcastOmitsDestination(t *testing.T) {
	raw, err := json.Marshal(Message{ID: 3, Source: 1, Payload: LoadBalancePayload()})

	require.NoError(t, err)
	require.NotContains(t, string(raw), "destination")

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.True(t, decoded.IsBroadcast())
	require.Equal(t, PayloadLoadBalance, decoded.Payload.Kind)
}
