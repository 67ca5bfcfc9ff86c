package session

import "github.com/prometheus/client_golang/prometheus"

var (
	ticks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "session",
			Name:      "ticks_total",
			Help:      "Ticks applied to the session.",
		},
	)
	timersFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "session",
			Name:      "timers_fired_total",
			Help:      "Timer transitions applied, by timer.",
		},
		[]string{"timer"},
	)
	intents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "session",
			Name:      "intents_total",
			Help:      "Intents received, by type and whether they changed the session.",
		},
		[]string{"type", "accepted"},
	)
	gamesOver = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "session",
			Name:      "games_over_total",
			Help:      "Sessions that reached game over, by cause.",
		},
		[]string{"cause"},
	)
	finalScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "engine",
			Subsystem: "session",
			Name:      "final_score",
			Help:      "Score at game over.",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(ticks, timersFired, intents, gamesOver, finalScores)
}

func acceptedLabel(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}
