// Package partition implements deterministic entity-to-node partitioning.
//
// The Manager splits a set of opaque entity IDs into exactly one partition per
// node index using a strategy selected at construction:
//
//   - RoundRobin: entity at input index i goes to partition i mod N. Maximally
//     even distribution, independent of entity ID content.
//   - Hash: partition = hash(entityID) mod N using a polynomial rolling hash,
//     so the same entity always maps to the same partition for a given N, even
//     across separate manager instances.
//   - Range: contiguous blocks of ceil(total/N) entities; the last partition
//     absorbs any remainder.
//   - LoadBalanced, Geographic: reserved strategies that currently fall back to
//     round-robin placement.
//
// Partition IDs come from a manager-local monotonic counter that is never
// reset, so partitions created across multiple CreatePartitions calls never
// collide. The manager maintains an entity index guaranteeing each entity ID
// belongs to at most one partition at a time.
package partition
