package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nelfund_chat_requests_total",
		Help: "Chat requests handled, labelled by classified intent.",
	}, []string{"intent"})

	chatDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nelfund_chat_duration_seconds",
		Help:    "End-to-end chat request duration.",
		Buckets: prometheus.DefBuckets,
	})

	sessionOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nelfund_session_operations_total",
		Help: "Session CRUD operations, labelled by operation.",
	}, []string{"op"})
)
