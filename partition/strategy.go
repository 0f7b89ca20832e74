package partition

import "fmt"

// Strategy selects the placement algorithm used by a Manager.
//
// The set of strategies is closed and dispatched via switch; see the package
// documentation for the behavior of each.
type Strategy int

const (
	// RoundRobin places entity i into partition i mod N.
	RoundRobin Strategy = iota

	// Hash places an entity by hashing its ID, independent of input order.
	Hash

	// Range places contiguous input blocks into consecutive partitions.
	Range

	// LoadBalanced is reserved for load-aware placement; currently falls back
	// to round-robin.
	LoadBalanced

	// Geographic is reserved for location-aware placement; currently falls
	// back to round-robin.
	Geographic
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case RoundRobin:
		return "roundRobin"
	case Hash:
		return "hash"
	case Range:
		return "range"
	case LoadBalanced:
		return "loadBalanced"
	case Geographic:
		return "geographic"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so strategies render as their
// string names in YAML and JSON configuration.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for configuration parsing.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "roundRobin", "":
		*s = RoundRobin
	case "hash":
		*s = Hash
	case "range":
		*s = Range
	case "loadBalanced":
		*s = LoadBalanced
	case "geographic":
		*s = Geographic
	default:
		return fmt.Errorf("unknown partition strategy %q", string(text))
	}

	return nil
}

// entityHash computes the polynomial rolling hash used by the Hash strategy:
// hash = hash*31 + byte over the UTF-8 bytes of the ID, starting at 0, with
// unsigned 64-bit wraparound. The function is intentionally fixed so that a
// fresh manager recomputes identical placements after a restart.
func entityHash(entityID string) uint64 {
	var h uint64
	for i := 0; i < len(entityID); i++ {
		h = h*31 + uint64(entityID[i])
	}

	return h
}
