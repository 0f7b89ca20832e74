package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/cool-japan/legalis-cluster/internal/logging"
	"github.com/cool-japan/legalis-cluster/types"
)

// natsPollTimeout bounds how long Receive and Peek wait for an in-flight
// message before reporting ok=false. Kept short so the interface stays
// effectively non-blocking.
const natsPollTimeout = 10 * time.Millisecond

// NATS is a Transport over core NATS subjects.
//
// Subjects are laid out as "<prefix>.node.<id>" for targeted messages and
// "<prefix>.broadcast" for broadcasts. The transport holds a single broadcast
// subscription shared by all nodes, so a broadcast is consumed by whichever
// node receives it first, matching the in-memory transport's
// single-consumption semantics.
//
// Ordering is FIFO per subject. Unlike Memory, targeted and broadcast
// messages travel on different subjects, so their relative order is not
// guaranteed; drivers that depend on strict cross-kind FIFO should use the
// in-memory transport. Size reports only messages already delivered to local
// subscription buffers.
type NATS struct {
	conn   *nats.Conn
	prefix string
	logger types.Logger

	mu     sync.Mutex // guards nextID and closed
	nextID uint64
	closed bool

	inboxes *xsync.Map[int, *natsInbox]

	bcastMu      sync.Mutex
	bcastSub     *nats.Subscription
	bcastPending []types.Message // broadcasts surfaced by Peek, not yet consumed
}

// natsInbox holds one node's targeted subscription and its peek buffer.
type natsInbox struct {
	mu      sync.Mutex
	sub     *nats.Subscription
	pending []types.Message
}

var _ types.Transport = (*NATS)(nil)

// NewNATS creates a NATS-backed transport. It subscribes the broadcast
// subject and an inbox per given node ID up front, so messages sent before a
// node's first Receive are not lost.
//
// Parameters:
//   - conn: Established NATS connection (owned by the caller)
//   - prefix: Subject prefix shared by all nodes of one cluster
//   - nodeIDs: Node IDs to subscribe immediately; other nodes are subscribed
//     lazily on their first Receive or Peek
//   - logger: Structured logger, nil for no logging
//
// Returns:
//   - *NATS: Initialized transport
//   - error: Subscription failure during setup
func NewNATS(conn *nats.Conn, prefix string, nodeIDs []int, logger types.Logger) (*NATS, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	t := &NATS{
		conn:    conn,
		prefix:  prefix,
		logger:  logger,
		inboxes: xsync.NewMap[int, *natsInbox](),
	}

	sub, err := conn.SubscribeSync(t.broadcastSubject())
	if err != nil {
		return nil, fmt.Errorf("subscribe broadcast subject: %w", err)
	}
	t.bcastSub = sub

	for _, id := range nodeIDs {
		if _, err := t.inbox(id); err != nil {
			t.Close()

			return nil, fmt.Errorf("subscribe inbox for node %d: %w", id, err)
		}
	}

	return t, nil
}

// Send publishes a message and returns its assigned sequence number. Publish
// failures are logged, not returned; the message ID is consumed either way so
// the sequence stays strictly increasing.
func (t *NATS) Send(source int, destination *int, payload types.Payload) uint64 {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	closed := t.closed
	t.mu.Unlock()

	msg := types.Message{
		ID:          id,
		Source:      source,
		Destination: copyDestination(destination),
		Payload:     payload,
		Timestamp:   time.Now().Unix(),
	}

	if closed {
		t.logger.Warn("send on closed transport dropped", "messageId", id)

		return id
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.logger.Error("marshal message failed", "messageId", id, "error", err)

		return id
	}

	subject := t.broadcastSubject()
	if destination != nil {
		subject = t.nodeSubject(*destination)
	}
	if err := t.conn.Publish(subject, data); err != nil {
		t.logger.Error("publish message failed", "subject", subject, "messageId", id, "error", err)
	}

	return id
}

// Receive removes and returns the next message for nodeID, checking the
// node's targeted subject before the shared broadcast subject. A consumed
// broadcast is gone for all other nodes.
func (t *NATS) Receive(nodeID int) (types.Message, bool) {
	inbox, err := t.inbox(nodeID)
	if err != nil {
		t.logger.Error("inbox unavailable", "nodeId", nodeID, "error", err)

		return types.Message{}, false
	}

	inbox.mu.Lock()
	if len(inbox.pending) > 0 {
		msg := inbox.pending[0]
		inbox.pending = inbox.pending[1:]
		inbox.mu.Unlock()

		return msg, true
	}
	msg, ok := t.pollSub(inbox.sub)
	inbox.mu.Unlock()
	if ok {
		return msg, true
	}

	t.bcastMu.Lock()
	defer t.bcastMu.Unlock()
	if len(t.bcastPending) > 0 {
		msg := t.bcastPending[0]
		t.bcastPending = t.bcastPending[1:]

		return msg, true
	}

	return t.pollSub(t.bcastSub)
}

// Peek returns the next message for nodeID without consuming it. The message
// is pulled into a local buffer; a peeked broadcast stays visible to every
// node until one of them receives it.
func (t *NATS) Peek(nodeID int) (types.Message, bool) {
	inbox, err := t.inbox(nodeID)
	if err != nil {
		t.logger.Error("inbox unavailable", "nodeId", nodeID, "error", err)

		return types.Message{}, false
	}

	inbox.mu.Lock()
	if len(inbox.pending) > 0 {
		msg := inbox.pending[0]
		inbox.mu.Unlock()

		return msg, true
	}
	msg, ok := t.pollSub(inbox.sub)
	if ok {
		inbox.pending = append(inbox.pending, msg)
		inbox.mu.Unlock()

		return msg, true
	}
	inbox.mu.Unlock()

	t.bcastMu.Lock()
	defer t.bcastMu.Unlock()
	if len(t.bcastPending) > 0 {
		return t.bcastPending[0], true
	}
	msg, ok = t.pollSub(t.bcastSub)
	if !ok {
		return types.Message{}, false
	}
	t.bcastPending = append(t.bcastPending, msg)

	return msg, true
}

// Size returns the number of messages buffered locally: peek buffers plus
// messages already delivered to the client-side subscription queues. Messages
// still in flight on the server are not counted.
func (t *NATS) Size() int {
	total := 0

	t.inboxes.Range(func(_ int, inbox *natsInbox) bool {
		inbox.mu.Lock()
		total += len(inbox.pending)
		if inbox.sub != nil {
			if n, _, err := inbox.sub.Pending(); err == nil {
				total += n
			}
		}
		inbox.mu.Unlock()

		return true
	})

	t.bcastMu.Lock()
	total += len(t.bcastPending)
	if t.bcastSub != nil {
		if n, _, err := t.bcastSub.Pending(); err == nil {
			total += n
		}
	}
	t.bcastMu.Unlock()

	return total
}

// Clear drops all locally buffered messages. The ID counter is not reset.
func (t *NATS) Clear() {
	t.inboxes.Range(func(_ int, inbox *natsInbox) bool {
		inbox.mu.Lock()
		inbox.pending = nil
		drainSub(inbox.sub)
		inbox.mu.Unlock()

		return true
	})

	t.bcastMu.Lock()
	t.bcastPending = nil
	drainSub(t.bcastSub)
	t.bcastMu.Unlock()
}

// Close unsubscribes all inboxes and the broadcast subscription. The NATS
// connection itself is left open for the owning caller. Sends after Close are
// dropped with a warning.
func (t *NATS) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	t.inboxes.Range(func(_ int, inbox *natsInbox) bool {
		inbox.mu.Lock()
		t.unsubscribe(inbox.sub)
		inbox.sub = nil
		inbox.mu.Unlock()

		return true
	})

	t.bcastMu.Lock()
	t.unsubscribe(t.bcastSub)
	t.bcastSub = nil
	t.bcastMu.Unlock()
}

func (t *NATS) unsubscribe(sub *nats.Subscription) {
	if sub == nil {
		return
	}
	if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		t.logger.Warn("unsubscribe failed", "error", err)
	}
}

// pollSub pulls and decodes the next message from one subscription.
func (t *NATS) pollSub(sub *nats.Subscription) (types.Message, bool) {
	if sub == nil {
		return types.Message{}, false
	}

	raw, err := sub.NextMsg(natsPollTimeout)
	if err != nil {
		return types.Message{}, false
	}

	var msg types.Message
	if err := json.Unmarshal(raw.Data, &msg); err != nil {
		t.logger.Error("decode message failed", "subject", raw.Subject, "error", err)

		return types.Message{}, false
	}

	return msg, true
}

func drainSub(sub *nats.Subscription) {
	if sub == nil {
		return
	}
	for {
		if _, err := sub.NextMsg(time.Millisecond); err != nil {
			return
		}
	}
}

// inbox returns the node's inbox, creating its subscription on first use.
func (t *NATS) inbox(nodeID int) (*natsInbox, error) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return nil, types.ErrTransportClosed
	}

	inbox, _ := t.inboxes.LoadOrStore(nodeID, &natsInbox{})

	inbox.mu.Lock()
	defer inbox.mu.Unlock()

	if inbox.sub == nil {
		sub, err := t.conn.SubscribeSync(t.nodeSubject(nodeID))
		if err != nil {
			return nil, err
		}
		inbox.sub = sub
	}

	return inbox, nil
}

func (t *NATS) nodeSubject(nodeID int) string {
	return fmt.Sprintf("%s.node.%d", t.prefix, nodeID)
}

func (t *NATS) broadcastSubject() string {
	return t.prefix + ".broadcast"
}
