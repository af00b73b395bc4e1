// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var IngestedScanResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "a11y_reports_ingested_scan_results_total",
	Help: "Number of scan results committed by the ingestion pipeline",
}, []string{"mode"})

var RejectedScanResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "a11y_reports_rejected_scan_results_total",
	Help: "Number of uploaded scan records rejected during normalization",
}, []string{"mode"})

var IngestionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "a11y_reports_ingestion_duration_seconds",
	Help:    "Duration of a single upload request in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"mode"})

var ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "a11y_reports_report_duration_seconds",
	Help:    "Duration of report aggregations in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"report"})

var ArchivedUploads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "a11y_reports_archived_uploads_total",
	Help: "Raw uploads written to object storage",
}, []string{"status"})
