package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surveyclean",
		Subsystem: "pipeline",
		Name:      "files_processed_total",
		Help:      "Files handled by the cleaning pipeline, by outcome.",
	}, []string{"status"})

	rowsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "surveyclean",
		Subsystem: "pipeline",
		Name:      "rows_cleaned_total",
		Help:      "Data rows emitted by successful cleaning runs.",
	})

	cleanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "surveyclean",
		Subsystem: "pipeline",
		Name:      "clean_duration_seconds",
		Help:      "Wall-clock time of a single file cleaning run.",
		Buckets:   prometheus.DefBuckets,
	})
)
