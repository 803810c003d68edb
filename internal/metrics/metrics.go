// Package metrics records statistics of a bring-up run in a private
// prometheus registry. Nothing is served; the registry can be written once
// in node-exporter textfile format at the end of a run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cassandra_ec2"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector holds the run metrics. A nil *Collector is valid and records
// nothing.
type Collector struct {
	registry *prometheus.Registry

	pollAttempts   prometheus.Counter
	remoteAttempts *prometheus.CounterVec
	fanoutNodes    *prometheus.CounterVec
	clusterNodes   prometheus.Gauge
	phaseDuration  *prometheus.HistogramVec
}

// New creates a collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		pollAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_attempts_total",
			Help:      "Readiness poll cycles that did not find the fleet ready",
		}),
		remoteAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_attempts_total",
			Help:      "Remote command attempts by result",
		}, []string{"result"}),
		fanoutNodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fanout_nodes_total",
			Help:      "Per-node fan-out operations by operation and result",
		}, []string{"operation", "result"}),
		clusterNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_nodes",
			Help:      "Live nodes in the cluster view",
		}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of each provisioning phase in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
		}, []string{"phase"}),
	}

	c.registry.MustRegister(
		c.pollAttempts,
		c.remoteAttempts,
		c.fanoutNodes,
		c.clusterNodes,
		c.phaseDuration,
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// PollAttempt records one unsatisfied readiness cycle.
func (c *Collector) PollAttempt() {
	if c == nil {
		return
	}
	c.pollAttempts.Inc()
}

// RemoteAttempt records one remote command attempt.
func (c *Collector) RemoteAttempt(ok bool) {
	if c == nil {
		return
	}
	c.remoteAttempts.WithLabelValues(result(ok)).Inc()
}

// FanoutNode records the outcome of one per-node fan-out operation.
func (c *Collector) FanoutNode(operation string, ok bool) {
	if c == nil {
		return
	}
	c.fanoutNodes.WithLabelValues(operation, result(ok)).Inc()
}

// SetClusterNodes records the size of the cluster view.
func (c *Collector) SetClusterNodes(n int) {
	if c == nil {
		return
	}
	c.clusterNodes.Set(float64(n))
}

// ObservePhase records how long a phase ran.
func (c *Collector) ObservePhase(phase string, seconds float64) {
	if c == nil {
		return
	}
	c.phaseDuration.WithLabelValues(phase).Observe(seconds)
}

// WriteTextfile writes all metrics to path in textfile format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
