package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain counters shared across modules.
type Metrics struct {
	VotesCast           *prometheus.CounterVec
	DuplicateVotes      prometheus.Counter
	TallyRecomputes     prometheus.Counter
	TallyDuration       prometheus.Histogram
	ContestsActivated   prometheus.Counter
	ContestsCompleted   prometheus.Counter
	WinnersDetermined   prometheus.Counter
	SweepRuns           prometheus.Counter
	WebhooksProcessed   prometheus.Counter
	WebhooksRejected    *prometheus.CounterVec
	CheckoutsCreated    prometheus.Counter
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers all domain collectors on the given registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		VotesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "votewalk_votes_cast_total",
			Help: "Ballots recorded, by vote type.",
		}, []string{"vote_type"}),
		DuplicateVotes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_duplicate_votes_total",
			Help: "Ballots rejected because the voter already voted in the contest.",
		}),
		TallyRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_tally_recomputes_total",
			Help: "Contest tally recomputation passes.",
		}),
		TallyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "votewalk_tally_recompute_seconds",
			Help:    "Duration of a contest tally recomputation pass.",
			Buckets: prometheus.DefBuckets,
		}),
		ContestsActivated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_contests_activated_total",
			Help: "Contest activations.",
		}),
		ContestsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_contests_completed_total",
			Help: "Contests transitioned to completed.",
		}),
		WinnersDetermined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_winners_determined_total",
			Help: "Sole winners attached to contests.",
		}),
		SweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_expired_sweep_runs_total",
			Help: "Expired-contest sweep executions.",
		}),
		WebhooksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_payment_webhooks_processed_total",
			Help: "Payment webhooks accepted and applied.",
		}),
		WebhooksRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "votewalk_payment_webhooks_rejected_total",
			Help: "Payment webhooks rejected, by reason.",
		}, []string{"reason"}),
		CheckoutsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "votewalk_checkouts_created_total",
			Help: "Checkout sessions created.",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "votewalk_http_request_seconds",
			Help:    "HTTP request duration by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	reg.MustRegister(
		m.VotesCast,
		m.DuplicateVotes,
		m.TallyRecomputes,
		m.TallyDuration,
		m.ContestsActivated,
		m.ContestsCompleted,
		m.WinnersDetermined,
		m.SweepRuns,
		m.WebhooksProcessed,
		m.WebhooksRejected,
		m.CheckoutsCreated,
		m.HTTPRequestDuration,
	)

	return m
}

// ObserveTally records one tally pass.
func (m *Metrics) ObserveTally(d time.Duration) {
	m.TallyRecomputes.Inc()
	m.TallyDuration.Observe(d.Seconds())
}
