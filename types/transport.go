package types

// Transport is the message channel between cluster nodes.
//
// The in-memory implementation is the reference: a single global FIFO queue
// filtered by destination, guarded by one mutex together with the monotonic
// message ID counter. A production system can substitute a real transport
// (message broker, gRPC streams) behind this interface without touching the
// partition manager or load balancer.
//
// Delivery semantics:
//   - FIFO order is preserved per destination, with broadcast messages
//     interleaved with targeted ones in arrival order.
//   - A broadcast message is removed on first receipt by any node; it is not
//     fanned out to every node. Callers must account for this.
//   - Receive never blocks; it returns ok=false when no message matches.
type Transport interface {
	// Send enqueues a message and returns its assigned sequence number.
	// A nil destination broadcasts the message. Send never applies
	// backpressure; the queue is unbounded in this design.
	Send(source int, destination *int, payload Payload) uint64

	// Receive removes and returns the oldest message addressed to nodeID or
	// broadcast. ok is false when no message matches.
	Receive(nodeID int) (Message, bool)

	// Peek returns the message Receive would return, without consuming it.
	Peek(nodeID int) (Message, bool)

	// Size returns the number of queued messages.
	Size() int

	// Clear drops all queued messages. The ID counter is not reset.
	Clear()
}
