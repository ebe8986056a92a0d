package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coach_ws_connections_active",
		Help: "Current number of registered user connections.",
	})
	ConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_ws_connections_total",
		Help: "Total number of websocket connections accepted.",
	})
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coach_match_sessions_active",
		Help: "Current number of in-progress match sessions.",
	})
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_ws_messages_received_total",
		Help: "Client messages received over websocket connections.",
	})
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coach_messages_sent_total",
		Help: "Coach messages and notifications delivered, by type.",
	}, []string{"type"})
	MessagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_messages_dropped_total",
		Help: "Outbound messages dropped because the user was offline or the outbox was full.",
	})
	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_session_analyses_total",
		Help: "Match-end analyses produced.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
