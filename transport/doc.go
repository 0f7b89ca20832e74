// Package transport provides message channel implementations behind the
// types.Transport interface.
//
// Memory is the reference implementation: a single in-process FIFO queue
// filtered by destination, standing in for a real network transport. NATS is
// a drop-in substitute over core NATS subjects, demonstrating that the
// coordination logic is transport-agnostic.
//
// Both implementations share the library's broadcast semantics: a broadcast
// message is consumed by the first node that receives it, not fanned out to
// every node. A production deployment wanting true fan-out should use
// per-node cursors or explicit per-node copies.
package transport
