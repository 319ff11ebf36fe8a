package match

import "github.com/prometheus/client_golang/prometheus"

var (
	MatchesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_started_total",
			Help: "Matches created from queue pairing or invite acceptance",
		},
	)
	MatchesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_finished_total",
			Help: "Matches ended normally, by result",
		},
		[]string{"result"},
	)
	MatchesAborted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_aborted_total",
			Help: "Matches aborted on disconnect",
		},
	)
	TurnTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "turn_timeouts_total",
			Help: "Turns forfeited by the deadline sweep",
		},
	)
	InvalidMoves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalid_moves_total",
			Help: "Rejected moves, by reason",
		},
		[]string{"reason"},
	)
	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "matchmaking_queue_depth",
			Help: "Users currently waiting in the matchmaking queue",
		},
	)
	LiveMatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_matches",
			Help: "Matches currently in progress",
		},
	)
)

func init() {
	prometheus.MustRegister(
		MatchesStarted,
		MatchesFinished,
		MatchesAborted,
		TurnTimeouts,
		InvalidMoves,
		QueueDepth,
		LiveMatches,
	)
}
