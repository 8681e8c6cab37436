package metrics

import (
	"time"
	"toolscout/sources/configuration"
	"toolscout/sources/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	recordsFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "toolscout_records_fetched_total",
			Help: "Total number of catalog records fetched",
		},
	)

	recordsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolscout_records_skipped_total",
			Help: "Total number of records skipped during normalization",
		},
		[]string{"reason"},
	)

	recordsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolscout_records_classified_total",
			Help: "Total number of records classified into quadrants",
		},
		[]string{"quadrant"},
	)

	fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "toolscout_catalog_fetch_duration_seconds",
			Help:    "Duration of catalog fetch requests",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(recordsFetched)
	prometheus.MustRegister(recordsSkipped)
	prometheus.MustRegister(recordsClassified)
	prometheus.MustRegister(fetchDuration)
}

type MetricsService struct {
	log    *tracing.Logger
	config *configuration.Config
}

func NewMetricsService(log *tracing.Logger, config *configuration.Config) *MetricsService {
	return &MetricsService{log: log, config: config}
}

func (x *MetricsService) ObserveFetch(elapsed time.Duration, count int) {
	fetchDuration.Observe(elapsed.Seconds())
	recordsFetched.Add(float64(count))
}

func (x *MetricsService) CountSkips(reason string, count int) {
	recordsSkipped.WithLabelValues(reason).Add(float64(count))
}

func (x *MetricsService) CountQuadrant(quadrant string, count int) {
	recordsClassified.WithLabelValues(quadrant).Add(float64(count))
}

// Push delivers the run's metrics to the configured Pushgateway. This is a
// run-to-completion job, there is no process alive afterwards to scrape, so
// the push model replaces a /metrics endpoint. Without a gateway configured
// metrics stay process-local and this is a no-op.
func (x *MetricsService) Push() error {
	if x.config.Metrics.PushGateway == "" {
		return nil
	}

	err := push.New(x.config.Metrics.PushGateway, x.config.Metrics.Job).
		Gatherer(prometheus.DefaultGatherer).
		Push()

	if err != nil {
		x.log.E("Failed to push metrics", tracing.InnerError, err)
		return err
	}

	x.log.I("Metrics pushed", "gateway", x.config.Metrics.PushGateway)
	return nil
}
