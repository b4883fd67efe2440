package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/repository"
)

const (
	ORIGIN_CALLER  = "caller"
	ORIGIN_DERIVED = "derived"

	RESULT_PRODUCED      = "produced"
	RESULT_NOTAPPLICABLE = "not-applicable"
	RESULT_FAILED        = "failed"

	STATUS_SUCCEEDED = "succeeded"
	STATUS_FAILED    = "failed"
)

// Collector observes repositories and provides the
// observations as prometheus metrics.
type Collector struct {
	added        *prometheus.CounterVec
	rekeyed      prometheus.Counter
	mappings     *prometheus.CounterVec
	cascades     *prometheus.CounterVec
	cascadeSize  prometheus.Histogram
	cascadeDepth prometheus.Histogram
}

var _ repository.Observer = (*Collector)(nil)
var _ prometheus.Collector = (*Collector)(nil)

func New(namespace string) *Collector {
	return &Collector{
		added: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_added_total",
			Help:      "Number of stored artifacts.",
		}, []string{"kind", "origin"}),
		rekeyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_rekeyed_total",
			Help:      "Number of artifacts stored under a newer revision than requested.",
		}),
		mappings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mapping_invocations_total",
			Help:      "Number of executed transformation mappings.",
		}, []string{"result"}),
		cascades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascades_total",
			Help:      "Number of propagation cascades started by caller insertions.",
		}, []string{"status"}),
		cascadeSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_artifacts",
			Help:      "Number of artifacts stored by a single cascade.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		cascadeDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_depth",
			Help:      "Maximum number of transformation steps of a single cascade.",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.added, c.rekeyed, c.mappings, c.cascades, c.cascadeSize, c.cascadeDepth}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, e := range c.collectors() {
		e.Describe(ch)
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, e := range c.collectors() {
		e.Collect(ch)
	}
}

func (c *Collector) ArtifactAdded(e repository.Event) {
	origin := ORIGIN_CALLER
	if e.IsDerived() {
		origin = ORIGIN_DERIVED
	}
	c.added.WithLabelValues(string(e.Artifact.Kind()), origin).Inc()
	if e.Rekeyed() {
		c.rekeyed.Inc()
	}
}

func (c *Collector) MappingApplied(t *artifact.Transformation, in artifact.Artifact, out artifact.Artifact, err error) {
	switch {
	case err != nil:
		c.mappings.WithLabelValues(RESULT_FAILED).Inc()
	case out == nil:
		c.mappings.WithLabelValues(RESULT_NOTAPPLICABLE).Inc()
	default:
		c.mappings.WithLabelValues(RESULT_PRODUCED).Inc()
	}
}

func (c *Collector) CascadeFinished(runid string, added int, depth int, err error) {
	status := STATUS_SUCCEEDED
	if err != nil {
		status = STATUS_FAILED
	}
	c.cascades.WithLabelValues(status).Inc()
	c.cascadeSize.Observe(float64(added))
	c.cascadeDepth.Observe(float64(depth))
}
