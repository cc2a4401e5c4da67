package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sectorcore_ticks_total",
		Help: "The number of simulation ticks run.",
	})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sectorcore_tick_duration_seconds",
		Help:    "The time spent running one simulation tick.",
		Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025},
	})

	blockedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sectorcore_blocked_contacts_total",
		Help: "The number of blocking wall contacts resolved.",
	})

	impactsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sectorcore_projectile_impacts_total",
		Help: "The number of projectile impacts recorded.",
	})

	outOfBoundsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sectorcore_out_of_bounds_total",
		Help: "The number of times a body was found outside every sector.",
	})

	rejectedSpawnsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sectorcore_rejected_spawns_total",
		Help: "The number of spawn requests rejected by reason.",
	}, []string{"reason"})

	bodiesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sectorcore_bodies",
		Help: "The number of live bodies by kind.",
	}, []string{"kind"})
)
