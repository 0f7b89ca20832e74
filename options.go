package cluster

// Option configures a Coordinator with optional dependencies.
type Option func(*coordinatorOptions)

// coordinatorOptions holds optional Coordinator configuration.
type coordinatorOptions struct {
	transport Transport
	publisher SnapshotPublisher
	metrics   MetricsCollector
	logger    Logger
}

// WithTransport sets a custom message channel implementation.
//
// The default is the in-memory transport. Substituting a real transport (such
// as transport.NATS) changes message delivery latency and cross-kind ordering
// but never the partitioning or balancing logic.
//
// Parameters:
//   - t: Transport implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	tr, _ := transport.NewNATS(nc, "cluster", nodeIDs, logger)
//	coord, _ := cluster.New(&cfg, cluster.WithTransport(tr))
func WithTransport(t Transport) Option {
	return func(o *coordinatorOptions) {
		o.transport = t
	}
}

// WithSnapshotPublisher sets a publisher for assignment snapshots.
//
// When configured, the coordinator publishes a versioned snapshot after each
// successful distribution and applied rebalance. Publish failures are logged
// and counted, never surfaced to distribution callers.
//
// Parameters:
//   - p: SnapshotPublisher implementation
//
// Returns:
//   - Option: Functional option for New
func WithSnapshotPublisher(p SnapshotPublisher) Option {
	return func(o *coordinatorOptions) {
		o.publisher = p
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *coordinatorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
func WithLogger(logger Logger) Option {
	return func(o *coordinatorOptions) {
		o.logger = logger
	}
}
