// Package metrics exposes store-level usage gauges to Prometheus.
package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"wordnest/internal/db"
)

var (
	vocabularyDesc = prometheus.NewDesc(
		"wordnest_vocabulary_entries",
		"Total personal vocabulary entries across all users",
		nil, nil,
	)
	sharedListsDesc = prometheus.NewDesc(
		"wordnest_shared_lists",
		"Total shared lists",
		nil, nil,
	)
	sharedWordsDesc = prometheus.NewDesc(
		"wordnest_shared_words",
		"Total word entries across all shared lists",
		nil, nil,
	)
)

// UsageCollector is a custom Prometheus collector that reads store
// counts from the database on each scrape.
type UsageCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *UsageCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- vocabularyDesc
	ch <- sharedListsDesc
	ch <- sharedWordsDesc
}

// Collect queries the database for usage counts and emits them as gauges.
func (c *UsageCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	if n, err := c.db.CountVocabulary(ctx); err != nil {
		slog.Error("failed to collect vocabulary count", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(vocabularyDesc, prometheus.GaugeValue, float64(n))
	}

	if n, err := c.db.CountSharedLists(ctx); err != nil {
		slog.Error("failed to collect shared list count", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(sharedListsDesc, prometheus.GaugeValue, float64(n))
	}

	if n, err := c.db.CountSharedWords(ctx); err != nil {
		slog.Error("failed to collect shared word count", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(sharedWordsDesc, prometheus.GaugeValue, float64(n))
	}
}

var registerOnce sync.Once

// Init registers the usage collector. Must be called once at startup.
func Init(database *db.DB) {
	registerOnce.Do(func() {
		prometheus.MustRegister(&UsageCollector{db: database})
	})
}
