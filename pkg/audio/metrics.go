package audio

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// sessionMetrics собирает счётчики по одной Prometheus-регистрации,
// разделяемой всеми сессиями процесса, с меткой session_id для разбора по
// конкретному звонку.
type sessionMetrics struct {
	packetsSent      *prometheus.CounterVec
	packetsReceived  *prometheus.CounterVec
	packetsDropped   *prometheus.CounterVec
	jitterDiscards   *prometheus.CounterVec
	dtmfEventsSent   *prometheus.CounterVec
	dtmfEventsRecv   *prometheus.CounterVec
	portAllocRetries prometheus.Histogram
}

var metrics = newSessionMetrics()

func newSessionMetrics() *sessionMetrics {
	return &sessionMetrics{
		packetsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtpaudio",
			Name:      "packets_sent_total",
			Help:      "Number of RTP packets sent (audio and telephony-event), by session.",
		}, []string{"session_id"}),
		packetsReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtpaudio",
			Name:      "packets_received_total",
			Help:      "Number of RTP audio packets accepted by the receiver, by session.",
		}, []string{"session_id"}),
		packetsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtpaudio",
			Name:      "packets_dropped_total",
			Help:      "Number of incoming packets rejected during validation, by session.",
		}, []string{"session_id"}),
		jitterDiscards: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtpaudio",
			Name:      "jitter_buffer_discards_total",
			Help:      "Number of frames discarded because the jitter buffer was full, by session.",
		}, []string{"session_id"}),
		dtmfEventsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtpaudio",
			Name:      "dtmf_events_sent_total",
			Help:      "Number of DTMF telephony events sent, by session.",
		}, []string{"session_id"}),
		dtmfEventsRecv: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtpaudio",
			Name:      "dtmf_events_received_total",
			Help:      "Number of RTP telephony-event (DTMF) packets received, by session.",
		}, []string{"session_id"}),
		portAllocRetries: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rtpaudio",
			Name:      "port_allocation_attempts",
			Help:      "Number of bind attempts needed to allocate a paired even RTP port.",
			Buckets:   prometheus.LinearBuckets(1, 5, 10),
		}),
	}
}
