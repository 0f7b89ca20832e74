package types

// ClusterState represents the coordinator lifecycle state.
//
// States follow a defined progression during normal operation:
//
//	StateInitialized → StateDistributing → StateSteady
//
// During rebalancing:
//
//	StateSteady → StateRebalancing → StateSteady
//
// There is no terminal state; the coordinator lives for the duration of the
// simulation or verification run and is discarded with its process.
type ClusterState int

const (
	// StateInitialized is the initial state before any distribution.
	StateInitialized ClusterState = iota

	// StateDistributing indicates entity distribution is in progress.
	StateDistributing

	// StateSteady indicates normal operation with a current assignment.
	StateSteady

	// StateRebalancing indicates a rebalance plan is being computed or applied.
	StateRebalancing
)

// String returns the string representation of the state.
func (s ClusterState) String() string {
	switch s {
	case StateInitialized:
		return "Initialized"
	case StateDistributing:
		return "Distributing"
	case StateSteady:
		return "Steady"
	case StateRebalancing:
		return "Rebalancing"
	default:
		return "Unknown"
	}
}
