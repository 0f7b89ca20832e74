package transport

import (
	"sync"
	"time"

	"github.com/cool-japan/legalis-cluster/types"
)

// Memory is an in-process Transport backed by a single global FIFO queue.
//
// One mutex guards both the queue and the monotonic message ID counter, since
// Send, Receive, and Peek interleave arbitrarily across callers. No operation
// blocks: Receive returns ok=false instead of waiting, and Send applies no
// backpressure. A production transport must add bounded capacity and define an
// explicit backpressure or drop policy; the unbounded queue is a deliberate
// simplification here.
type Memory struct {
	mu     sync.Mutex
	queue  []types.Message
	nextID uint64
}

var _ types.Transport = (*Memory)(nil)

// NewMemory creates an empty in-memory transport. Message IDs start at 0.
func NewMemory() *Memory {
	return &Memory{}
}

// Send enqueues a message and returns its assigned sequence number. A nil
// destination broadcasts the message.
func (m *Memory) Send(source int, destination *int, payload types.Payload) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := types.Message{
		ID:          m.nextID,
		Source:      source,
		Destination: copyDestination(destination),
		Payload:     payload,
		Timestamp:   time.Now().Unix(),
	}
	m.nextID++
	m.queue = append(m.queue, msg)

	return msg.ID
}

// Receive removes and returns the oldest message addressed to nodeID or
// broadcast. A consumed broadcast message is gone for all other nodes.
func (m *Memory) Receive(nodeID int) (types.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, msg := range m.queue {
		if msg.MatchesNode(nodeID) {
			m.queue = append(m.queue[:i:i], m.queue[i+1:]...)

			return msg, true
		}
	}

	return types.Message{}, false
}

// Peek returns the message Receive would return, without consuming it.
func (m *Memory) Peek(nodeID int) (types.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, msg := range m.queue {
		if msg.MatchesNode(nodeID) {
			return msg, true
		}
	}

	return types.Message{}, false
}

// Size returns the number of queued messages.
func (m *Memory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.queue)
}

// Clear drops all queued messages. The ID counter is not reset, so IDs remain
// unique for the transport's lifetime.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue = nil
}

// copyDestination detaches the destination pointer from caller-owned memory.
func copyDestination(destination *int) *int {
	if destination == nil {
		return nil
	}
	d := *destination

	return &d
}
