package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterDayAdvances         prometheus.Counter
	CounterSessionsClosed      prometheus.Counter
	CounterCheckIns            prometheus.Counter
	CounterCheckOuts           prometheus.Counter
	CounterWorkoutLogs         prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistogramCheckInDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("gymlog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gymlog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}
	}

	counterRequests := factory.NewCounterVec(
		counterOpts("request", "The total number of incoming requests"),
		[]string{"method", "status"},
	)

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	histogramCheckInDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "check_in_duration_minutes",
		Help:      "Duration of closed gym check-ins in minutes",
		Buckets:   []float64{10, 20, 30, 45, 60, 75, 90, 120, 180, 240},
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  factory.NewCounter(counterOpts("handle_request_panic", "The total number of serve request panics")),
		CounterRateLimitedRequests: factory.NewCounter(counterOpts("rate_limited_requests", "The total number of rate limited requests")),
		CounterDayAdvances:         factory.NewCounter(counterOpts("day_advances", "The total number of workout day advances")),
		CounterSessionsClosed:      factory.NewCounter(counterOpts("sessions_closed", "The total number of workout sessions closed as complete")),
		CounterCheckIns:            factory.NewCounter(counterOpts("check_ins", "The total number of gym check-ins")),
		CounterCheckOuts:           factory.NewCounter(counterOpts("check_outs", "The total number of gym check-outs")),
		CounterWorkoutLogs:         factory.NewCounter(counterOpts("workout_logs_saved", "The total number of saved workout logs")),
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistogramRequestDuration:   histogramRequestDuration,
		HistogramCheckInDuration:   histogramCheckInDuration,
	}
}
