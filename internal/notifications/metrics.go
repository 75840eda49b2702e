package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/restockwatch/restockwatch/internal/domain"
)

var (
	sentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restockwatch",
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Notifications sent by channel type",
		},
		[]string{"channel_type"},
	)

	sendErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restockwatch",
			Subsystem: "notifications",
			Name:      "send_errors_total",
			Help:      "Notification send failures by channel type",
		},
		[]string{"channel_type"},
	)
)

func recordSent(channelType domain.ChannelType) {
	sentTotal.WithLabelValues(string(channelType)).Inc()
}

func recordSendError(channelType domain.ChannelType) {
	sendErrorsTotal.WithLabelValues(string(channelType)).Inc()
}
