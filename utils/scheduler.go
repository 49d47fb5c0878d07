package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"bookapi/aggregator"
)

// logReconciler logs reconciler events with timestamp
func logReconciler(message string) {
	log.Printf("[AGGREGATE-RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReconciler schedules a daily rebuild of every book's aggregate fields.
// A recompute that fails after a review write leaves a stale aggregate; this
// job repairs it. Stop the returned cron on shutdown.
func StartReconciler(agg *aggregator.Aggregator) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		logReconciler("Rebuilding book aggregates...")
		if err := agg.RebuildAll(); err != nil {
			logReconciler("Rebuild failed: " + err.Error())
			return
		}
		logReconciler("Rebuild completed.")
	})
	if err != nil {
		log.Fatalf("Failed to schedule aggregate reconciler: %v", err)
	}

	c.Start()
	logReconciler("Scheduler started.")
	return c
}
