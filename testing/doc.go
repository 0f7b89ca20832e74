// Package testing provides helpers for testing NATS-backed components of the
// cluster library: an embedded NATS server with JetStream and a logger that
// writes through testing.T.
//
// The embedded server runs in-process with no external dependencies, starts in
// milliseconds, and cleans itself up via t.Cleanup, which makes it suitable
// for parallel test execution and CI.
package testing
