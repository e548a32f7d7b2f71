package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the lab command pipeline.
type Metrics struct {
	MessagesProcessed prometheus.Counter
	CommandsProcessed *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec
	ErrorsTotal       prometheus.Counter
	BookingsCreated   prometheus.Counter
	BookingsCancelled prometheus.Counter
	RateLimited       prometheus.Counter
}

// New registers metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics on the given registerer. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MessagesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "labbot_messages_processed_total",
			Help: "Total number of chat messages handled by the bot.",
		}),
		CommandsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "labbot_commands_processed_total",
			Help: "Lab sub-commands dispatched, by action.",
		}, []string{"action"}),
		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labbot_command_duration_seconds",
			Help:    "Time spent handling a lab sub-command.",
			Buckets: prometheus.DefBuckets,
		}, []string{"action"}),
		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "labbot_errors_total",
			Help: "Unexpected errors recovered at the command router.",
		}),
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "labbot_bookings_created_total",
			Help: "Total number of bookings created.",
		}),
		BookingsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "labbot_bookings_cancelled_total",
			Help: "Total number of bookings cancelled.",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "labbot_rate_limited_total",
			Help: "Commands dropped by the per-user rate limit.",
		}),
	}
}
