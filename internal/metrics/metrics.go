package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SlotsPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_slots_published_total",
			Help: "Total number of trainer availability slots published",
		},
	)

	SlotBookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_slot_bookings_total",
			Help: "Total number of slot booking attempts",
		},
		[]string{"outcome"},
	)

	JoinRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_join_requests_total",
			Help: "Total number of join requests by action",
		},
		[]string{"action", "role"},
	)

	ChatMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_chat_messages_total",
			Help: "Total number of chat messages relayed",
		},
	)

	AnnouncementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_announcements_total",
			Help: "Total number of announcement events by kind",
		},
		[]string{"kind"},
	)

	EventLogEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_event_log_evictions_total",
			Help: "Total number of rows evicted from the event log",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymdesk_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymdesk_websocket_clients",
			Help: "Currently connected websocket clients",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSlotPublished() {
	SlotsPublishedTotal.Inc()
}

func RecordSlotBooking(outcome string) {
	SlotBookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordJoinRequest(action, role string) {
	JoinRequestsTotal.WithLabelValues(action, role).Inc()
}

func RecordChatMessage() {
	ChatMessagesTotal.Inc()
}

func RecordAnnouncement(kind string) {
	AnnouncementsTotal.WithLabelValues(kind).Inc()
}

func RecordEventLogEvictions(n int) {
	EventLogEvictionsTotal.Add(float64(n))
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
