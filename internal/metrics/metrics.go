package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	TicksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "localchat_poll_ticks_total",
		Help: "Total number of poller ticks executed",
	}, []string{"poller"})
	TickFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "localchat_poll_tick_failures_total",
		Help: "Total number of poller ticks that failed or panicked",
	}, []string{"poller"})
	ActivePollers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "localchat_poll_active_pollers",
		Help: "Current number of registered pollers",
	})
	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "localchat_messages_sent_total",
		Help: "Total number of messages inserted by this process",
	})
)

func init() {
	prometheus.MustRegister(TicksTotal, TickFailures, ActivePollers, MessagesSent)
}
