package transport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cool-japan/legalis-cluster/types"
)

func dest(nodeID int) *int {
	return &nodeID
}

func TestMemory_SendAssignsSequentialIDs(t *testing.T) {
	ch := NewMemory()

	require.Equal(t, uint64(0), ch.Send(0, dest(1), types.BarrierPayload()))
	require.Equal(t, uint64(1), ch.Send(0, nil, types.BarrierPayload()))
	require.Equal(t, uint64(2), ch.Send(1, dest(0), types.BarrierPayload()))
	require.Equal(t, 3, ch.Size())
}

func TestMemory_FIFOPerDestination(t *testing.T) {
	ch := NewMemory()

	m1 := ch.Send(0, dest(1), types.CustomPayload("m1"))
	m2 := ch.Send(0, nil, types.CustomPayload("m2")) // broadcast
	m3 := ch.Send(0, dest(1), types.CustomPayload("m3"))

	got1, ok := ch.Receive(1)
	require.True(t, ok)
	require.Equal(t, m1, got1.ID)

	got2, ok := ch.Receive(1)
	require.True(t, ok)
	require.Equal(t, m2, got2.ID)

	got3, ok := ch.Receive(1)
	require.True(t, ok)
	require.Equal(t, m3, got3.ID)

	_, ok = ch.Receive(1)
	require.False(t, ok)
}

func TestMemory_ReceiveSkipsOtherDestinations(t *testing.T) {
	ch := NewMemory()

	ch.Send(0, dest(2), types.CustomPayload("for node 2"))
	otherID := ch.Send(0, dest(1), types.CustomPayload("for node 1"))

	got, ok := ch.Receive(1)
	require.True(t, ok)
	require.Equal(t, otherID, got.ID)

	// Node 2's message is still queued.
	require.Equal(t, 1, ch.Size())
}

func TestMemory_BroadcastSingleConsumption(t *testing.T) {
	ch := NewMemory()

	ch.Send(0, nil, types.BarrierPayload())

	_, ok := ch.Receive(1)
	require.True(t, ok)

	// The broadcast was consumed by node 1 and is not visible to node 2.
	_, ok = ch.Receive(2)
	require.False(t, ok)
}

func TestMemory_PeekIsNonDestructive(t *testing.T) {
	ch := NewMemory()
	sent := ch.Send(0, dest(1), types.CustomPayload("x"))

	peeked, ok := ch.Peek(1)
	require.True(t, ok)
	require.Equal(t, sent, peeked.ID)
	require.Equal(t, 1, ch.Size())

	received, ok := ch.Receive(1)
	require.True(t, ok)
	require.Equal(t, sent, received.ID)

	_, ok = ch.Peek(1)
	require.False(t, ok)
}

func TestMemory_Clear(t *testing.T) {
	ch := NewMemory()
	ch.Send(0, nil, types.BarrierPayload())
	ch.Send(0, nil, types.BarrierPayload())

	ch.Clear()

	require.Zero(t, ch.Size())

	// IDs keep increasing after Clear.
	require.Equal(t, uint64(2), ch.Send(0, nil, types.BarrierPayload()))
}

func TestMemory_ConcurrentSendersKeepIDsUnique(t *testing.T) {
	ch := NewMemory()

	const senders = 8
	const perSender = 50

	var wg sync.WaitGroup
	ids := make([][]uint64, senders)
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				ids[s] = append(ids[s], ch.Send(s, nil, types.CustomPayload("c")))
			}
		}(s)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, batch := range ids {
		for _, id := range batch {
			require.False(t, seen[id], "duplicate message ID %d", id)
			seen[id] = true
		}
	}
	require.Equal(t, senders*perSender, ch.Size())
}
