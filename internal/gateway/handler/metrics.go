package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_transactions_created_total",
		Help: "Transactions started at the payment provider, by gateway",
	}, []string{"gateway"})

	notificationsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_notifications_total",
		Help: "Status reports received, by outcome (applied, ignored, invalid_signature, error)",
	}, []string{"outcome"})
)
