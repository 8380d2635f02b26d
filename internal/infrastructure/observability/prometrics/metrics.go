package prometrics

import (
	"github.com/minpay/orderpay/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Provider registers the application's metric instruments with Prometheus
// and serves them keyed by observability.MetricKey.
type Provider struct {
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

// New registers the standard instrument set on the given registerer and
// returns a Metrics provider over them. Passing nil uses the default
// registerer.
func New(reg prometheus.Registerer, namespace string) *Provider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &Provider{
		counters:   make(map[observability.MetricKey]observability.Counter),
		histograms: make(map[observability.MetricKey]observability.Histogram),
	}

	p.counters[observability.MUsecaseRequests] = newCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      string(observability.MUsecaseRequests),
		Help:      "Total number of use case invocations.",
	}, "use_case", "outcome")

	p.histograms[observability.MUsecaseDuration] = newHistogram(reg, prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      string(observability.MUsecaseDuration),
		Help:      "Duration of use case execution in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, "use_case")

	p.counters[observability.MHTTPRequests] = newCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      string(observability.MHTTPRequests),
		Help:      "Total number of handled HTTP requests.",
	}, "method", "route", "status")

	p.histograms[observability.MHTTPRequestDuration] = newHistogram(reg, prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      string(observability.MHTTPRequestDuration),
		Help:      "Duration of HTTP request handling in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, "method", "route", "status")

	p.counters[observability.MExternalRequests] = newCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      string(observability.MExternalRequests),
		Help:      "Total number of calls to external collaborators.",
	}, "peer", "endpoint", "outcome")

	p.histograms[observability.MExternalRequestDuration] = newHistogram(reg, prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      string(observability.MExternalRequestDuration),
		Help:      "Duration of external collaborator calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, "peer", "endpoint")

	return p
}

func (p *Provider) Counter(name observability.MetricKey) observability.Counter {
	if c, ok := p.counters[name]; ok {
		return c
	}
	return observability.NopCounter()
}

func (p *Provider) Histogram(name observability.MetricKey) observability.Histogram {
	if h, ok := p.histograms[name]; ok {
		return h
	}
	return observability.NopHistogram()
}

func newCounter(reg prometheus.Registerer, opts prometheus.CounterOpts, labelKeys ...string) observability.Counter {
	cv := prometheus.NewCounterVec(opts, labelKeys)
	reg.MustRegister(cv)
	return &counter{v: cv}
}

func newHistogram(reg prometheus.Registerer, opts prometheus.HistogramOpts, labelKeys ...string) observability.Histogram {
	hv := prometheus.NewHistogramVec(opts, labelKeys)
	reg.MustRegister(hv)
	return &histogram{v: hv}
}

type counter struct{ v *prometheus.CounterVec }

func (c *counter) Add(d float64, labels ...observability.Label) {
	c.v.With(labelMap(labels)).Add(d)
}

func (c *counter) Bind(labels ...observability.Label) observability.BoundCounter {
	return &boundCounter{v: c.v, labels: labelMap(labels)}
}

type boundCounter struct {
	v      *prometheus.CounterVec
	labels prometheus.Labels
}

func (c *boundCounter) Add(d float64) {
	if c == nil || c.v == nil {
		return
	}
	c.v.With(c.labels).Add(d)
}

type histogram struct{ v *prometheus.HistogramVec }

func (h *histogram) Observe(v float64, labels ...observability.Label) {
	h.v.With(labelMap(labels)).Observe(v)
}

func (h *histogram) Bind(labels ...observability.Label) observability.BoundHistogram {
	return &boundHistogram{v: h.v, labels: labelMap(labels)}
}

type boundHistogram struct {
	v      *prometheus.HistogramVec
	labels prometheus.Labels
}

func (h *boundHistogram) Observe(v float64) {
	if h == nil || h.v == nil {
		return
	}
	h.v.With(h.labels).Observe(v)
}

func labelMap(ls []observability.Label) prometheus.Labels {
	m := make(prometheus.Labels, len(ls))
	for _, l := range ls {
		m[l.Key] = l.Value
	}
	return m
}
