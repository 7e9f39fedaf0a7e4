package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	comparisons  *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "molrmsd_comparisons_total",
			Help: "RMSD comparisons by result.",
		}, []string{"result"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "molrmsd_load_duration_seconds",
			Help:    "Time spent converting an uploaded file into an atom table.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
	}
	reg.MustRegister(m.comparisons, m.loadDuration)
	return m
}
