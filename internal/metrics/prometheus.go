package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cool-japan/legalis-cluster/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric registration is lazy and happens exactly once, on the first recorded
// observation, so constructing a collector never panics on duplicate
// registration in tests that share a registry.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	distributions       prometheus.Counter
	distributedEntities prometheus.Counter
	nodeLoad            *prometheus.GaugeVec
	partitionCount      prometheus.Gauge
	messagesSent        *prometheus.CounterVec
	messagesReceived    *prometheus.CounterVec
	rebalanceChecks     *prometheus.CounterVec
	rebalanceMoves      prometheus.Histogram
	snapshotPublishes   *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "cluster" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "cluster"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.distributions = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "coordinator",
			Name:      "distributions_total",
			Help:      "Total completed entity distributions.",
		})
		p.distributedEntities = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "coordinator",
			Name:      "distributed_entities_total",
			Help:      "Total entities placed across all distributions.",
		})
		p.nodeLoad = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "registry",
			Name:      "node_load",
			Help:      "Current normalized load per node.",
		}, []string{"node"})
		p.partitionCount = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "partitions_current",
			Help:      "Current number of tracked partitions.",
		})
		p.messagesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "transport",
			Name:      "messages_sent_total",
			Help:      "Total messages sent by payload kind.",
		}, []string{"kind"})
		p.messagesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "transport",
			Name:      "messages_received_total",
			Help:      "Total messages received by payload kind.",
		}, []string{"kind"})
		p.rebalanceChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "balance",
			Name:      "rebalance_checks_total",
			Help:      "Total rebalance policy evaluations by outcome.",
		}, []string{"triggered"})
		p.rebalanceMoves = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "balance",
			Name:      "rebalance_plan_moves",
			Help:      "Number of moves per computed rebalance plan.",
			Buckets:   prometheus.LinearBuckets(0, 2, 8), // 0 .. 14 moves
		})
		p.snapshotPublishes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "snapshot",
			Name:      "publishes_total",
			Help:      "Total snapshot publish attempts by result.",
		}, []string{"result"})

		collectors := []prometheus.Collector{
			p.distributions, p.distributedEntities, p.nodeLoad, p.partitionCount,
			p.messagesSent, p.messagesReceived, p.rebalanceChecks,
			p.rebalanceMoves, p.snapshotPublishes,
		}
		for _, c := range collectors {
			err := p.reg.Register(c)
			if err == nil {
				continue
			}
			// AlreadyRegisteredError means another collector instance owns
			// the metric; keep using our local instance for writes.
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	})
}

// RecordDistribution records a completed entity distribution.
func (p *PrometheusCollector) RecordDistribution(entities, _ int) {
	p.ensureRegistered()
	p.distributions.Inc()
	p.distributedEntities.Add(float64(entities))
}

// SetNodeLoad records the current normalized load of a node.
func (p *PrometheusCollector) SetNodeLoad(nodeID int, load float64) {
	p.ensureRegistered()
	p.nodeLoad.WithLabelValues(strconv.Itoa(nodeID)).Set(load)
}

// SetPartitionCount records the current number of tracked partitions.
func (p *PrometheusCollector) SetPartitionCount(count int) {
	p.ensureRegistered()
	p.partitionCount.Set(float64(count))
}

// IncMessageSent counts an outbound message by payload kind.
func (p *PrometheusCollector) IncMessageSent(kind string) {
	p.ensureRegistered()
	p.messagesSent.WithLabelValues(kind).Inc()
}

// IncMessageReceived counts a consumed message by payload kind.
func (p *PrometheusCollector) IncMessageReceived(kind string) {
	p.ensureRegistered()
	p.messagesReceived.WithLabelValues(kind).Inc()
}

// IncRebalanceCheck counts a rebalance policy evaluation.
func (p *PrometheusCollector) IncRebalanceCheck(triggered bool) {
	p.ensureRegistered()
	p.rebalanceChecks.WithLabelValues(strconv.FormatBool(triggered)).Inc()
}

// RecordRebalanceMoves records the size of a computed rebalance plan.
func (p *PrometheusCollector) RecordRebalanceMoves(moves int) {
	p.ensureRegistered()
	p.rebalanceMoves.Observe(float64(moves))
}

// IncSnapshotPublish counts a snapshot publish attempt by result.
func (p *PrometheusCollector) IncSnapshotPublish(result string) {
	p.ensureRegistered()
	p.snapshotPublishes.WithLabelValues(result).Inc()
}
