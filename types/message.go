package types

// PayloadKind discriminates the closed set of control message payloads.
//
// The set is fixed by design: payloads are dispatched via switch, not through
// an open interface hierarchy.
type PayloadKind int

const (
	// PayloadBarrier signals a synchronization point. Delivery is
	// fire-and-forget; no acknowledgement is collected.
	PayloadBarrier PayloadKind = iota

	// PayloadEntityData carries a batch of entity IDs.
	PayloadEntityData

	// PayloadResults carries verification metrics produced by a node.
	PayloadResults

	// PayloadLoadBalance notifies nodes that a rebalance plan was computed.
	PayloadLoadBalance

	// PayloadCheckpoint asks nodes to checkpoint, optionally correlated with a
	// published assignment snapshot version.
	PayloadCheckpoint

	// PayloadStatusUpdate carries a node status change.
	PayloadStatusUpdate

	// PayloadCustom carries an opaque caller-defined string.
	PayloadCustom
)

// String returns the string representation of the payload kind.
func (k PayloadKind) String() string {
	switch k {
	case PayloadBarrier:
		return "barrier"
	case PayloadEntityData:
		return "entity_data"
	case PayloadResults:
		return "results"
	case PayloadLoadBalance:
		return "load_balance"
	case PayloadCheckpoint:
		return "checkpoint"
	case PayloadStatusUpdate:
		return "status_update"
	case PayloadCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Metrics summarizes the outcome of a verification batch executed on one node.
type Metrics struct {
	// RulesEvaluated is the number of rule evaluations performed.
	RulesEvaluated int64 `json:"rulesEvaluated"`

	// Violations is the number of rule violations detected.
	Violations int64 `json:"violations"`

	// ElapsedSeconds is the wall-clock duration of the batch.
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

// Payload is the tagged union carried by a Message. Kind selects which of the
// optional fields is meaningful; all other fields are zero.
type Payload struct {
	Kind PayloadKind `json:"kind"`

	// Entities is set for PayloadEntityData.
	Entities []string `json:"entities,omitempty"`

	// Metrics is set for PayloadResults.
	Metrics *Metrics `json:"metrics,omitempty"`

	// Status is set for PayloadStatusUpdate.
	Status NodeStatus `json:"status,omitempty"`

	// SnapshotVersion is set for PayloadCheckpoint (0 = uncorrelated).
	SnapshotVersion int64 `json:"snapshotVersion,omitempty"`

	// Custom is set for PayloadCustom.
	Custom string `json:"custom,omitempty"`
}

// BarrierPayload returns a barrier payload.
func BarrierPayload() Payload {
	return Payload{Kind: PayloadBarrier}
}

// EntityDataPayload returns a payload carrying a batch of entity IDs.
func EntityDataPayload(entityIDs []string) Payload {
	return Payload{Kind: PayloadEntityData, Entities: entityIDs}
}

// ResultsPayload returns a payload carrying verification metrics.
func ResultsPayload(m Metrics) Payload {
	return Payload{Kind: PayloadResults, Metrics: &m}
}

// LoadBalancePayload returns a rebalance notification payload.
func LoadBalancePayload() Payload {
	return Payload{Kind: PayloadLoadBalance}
}

// CheckpointPayload returns a checkpoint payload correlated with the given
// assignment snapshot version (0 for uncorrelated checkpoints).
func CheckpointPayload(snapshotVersion int64) Payload {
	return Payload{Kind: PayloadCheckpoint, SnapshotVersion: snapshotVersion}
}

// StatusUpdatePayload returns a payload carrying a node status change.
func StatusUpdatePayload(status NodeStatus) Payload {
	return Payload{Kind: PayloadStatusUpdate, Status: status}
}

// CustomPayload returns a payload carrying an opaque string.
func CustomPayload(data string) Payload {
	return Payload{Kind: PayloadCustom, Custom: data}
}

// Message is a control message exchanged between cluster nodes.
//
// Message IDs are assigned by the transport from a strictly increasing counter
// starting at 0 and are never reused within one transport instance.
type Message struct {
	// ID is the transport-assigned sequence number.
	ID uint64 `json:"id"`

	// Source is the sending node's ID.
	Source int `json:"source"`

	// Destination is the receiving node's ID, or nil for broadcast.
	Destination *int `json:"destination,omitempty"`

	// Payload is the tagged message body.
	Payload Payload `json:"payload"`

	// Timestamp is seconds since epoch at enqueue time.
	Timestamp int64 `json:"timestamp"`
}

// IsBroadcast reports whether the message has no specific destination.
func (m Message) IsBroadcast() bool {
	return m.Destination == nil
}

// MatchesNode reports whether the message is deliverable to the given node,
// either addressed to it directly or broadcast.
func (m Message) MatchesNode(nodeID int) bool {
	return m.Destination == nil || *m.Destination == nodeID
}
