package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BatchDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_batch_decisions_total",
			Help: "Per-record batch decisions by pass and action",
		},
		[]string{"pass", "action"}, // assign-suffixes|apply-suspensions|... , updated|skipped|flagged|failed|deleted
	)

	PaymentsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_payments_submitted_total",
			Help: "Agent payment submissions by result",
		},
		[]string{"result"}, // recorded|duplicate|rejected|error
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_notifications_total",
			Help: "Status-change SMS notifications by outcome",
		},
		[]string{"outcome"}, // sent|failed|dropped
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		BatchDecisionsTotal,
		PaymentsSubmittedTotal,
		NotificationsTotal,
	)
}
