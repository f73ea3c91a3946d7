package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "svoikit"

type Metrics struct {
	ActiveRooms      prometheus.Gauge
	RoomsCreated     prometheus.Counter
	GamesFinished    *prometheus.CounterVec
	BotJoins         prometheus.Counter
	BotMoves         prometheus.Counter
	WebsocketClients prometheus.Gauge
	RequestLatency   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the game metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	return NewWithRegistry(registry, registry)
}

func NewWithRegistry(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms currently stored",
		}),
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Total number of rooms created",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Total number of finished games by outcome",
		}, []string{"outcome"}),
		BotJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_joins_total",
			Help:      "Total number of rooms the bot joined",
		}),
		BotMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_moves_total",
			Help:      "Total number of moves made by the bot",
		}),
		WebsocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Number of connected websocket clients",
		}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method", "route", "status"}),

		gatherer: gatherer,
	}

	registerer.MustRegister(
		m.ActiveRooms,
		m.RoomsCreated,
		m.GamesFinished,
		m.BotJoins,
		m.BotMoves,
		m.WebsocketClients,
		m.RequestLatency,
	)

	return m
}

func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.gatherer, promhttp.HandlerOpts{})
}

func (that *Metrics) SetActiveRooms(n int) {
	that.ActiveRooms.Set(float64(n))
}

func (that *Metrics) RoomCreated() {
	that.RoomsCreated.Inc()
	that.ActiveRooms.Inc()
}

func (that *Metrics) RoomClosed() {
	that.ActiveRooms.Dec()
}

func (that *Metrics) GameFinished(outcome string) {
	that.GamesFinished.WithLabelValues(outcome).Inc()
}

func (that *Metrics) BotJoined() {
	that.BotJoins.Inc()
}

func (that *Metrics) BotMoved() {
	that.BotMoves.Inc()
}

func (that *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	that.RequestLatency.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

func (that *Metrics) ClientConnected() {
	that.WebsocketClients.Inc()
}

func (that *Metrics) ClientDisconnected() {
	that.WebsocketClients.Dec()
}
