package ws

import "github.com/prometheus/client_golang/prometheus"

var wsConnections = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "ws_connections",
		Help: "Live websocket connections",
	},
)

func init() {
	prometheus.MustRegister(wsConnections)
}
