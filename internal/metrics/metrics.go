package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campuslink_reports_created_total",
		Help: "Reports submitted, by flagged item kind.",
	}, []string{"item_kind"})

	ReportsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campuslink_reports_resolved_total",
		Help: "Moderation actions applied to reports.",
	}, []string{"action"})

	NotificationsFannedOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campuslink_report_notifications_total",
		Help: "Notification rows written by report fan-out.",
	})
)
