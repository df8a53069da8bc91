package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"powchain/logx"
)

type ledgerPromMetrics struct {
	chainHeight     prometheus.Gauge
	recordsMined    prometheus.Counter
	miningAttempts  prometheus.Counter
	miningDuration  prometheus.Histogram
	validationFails prometheus.Counter
	panicCount      prometheus.Counter
}

func newLedgerPromMetrics() *ledgerPromMetrics {
	return &ledgerPromMetrics{
		chainHeight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "powchain_chain_height",
				Help: "Number of records currently in the ledger, genesis included",
			},
		),
		recordsMined: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powchain_records_mined_total",
				Help: "Total records successfully mined and appended",
			},
		),
		miningAttempts: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powchain_mining_attempts_total",
				Help: "Total digest computations spent searching for nonces",
			},
		),
		miningDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "powchain_mining_duration_seconds",
				Help:    "Wall-clock time spent mining a single record",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
			},
		),
		validationFails: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powchain_validation_failures_total",
				Help: "Total chain validations that found a broken digest or link",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powchain_panic_total",
				Help: "Total panics recovered in background goroutines",
			},
		),
	}
}

var metrics = newLedgerPromMetrics()

func SetChainHeight(height uint64) {
	metrics.chainHeight.Set(float64(height))
}

func ObserveMining(attempts uint64, seconds float64) {
	metrics.recordsMined.Inc()
	metrics.miningAttempts.Add(float64(attempts))
	metrics.miningDuration.Observe(seconds)
}

func IncreaseValidationFailCount() {
	metrics.validationFails.Inc()
}

func IncreasePanicCount() {
	metrics.panicCount.Inc()
}

// ServeMetrics blocks serving the prometheus endpoint; callers run it in a
// background goroutine.
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logx.Info("MONITORING", "Serving metrics on ", addr)
	if err := server.ListenAndServe(); err != nil {
		logx.Error("MONITORING", "Metrics server stopped: ", err)
	}
}
