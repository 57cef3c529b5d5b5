package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	// Account lifecycle metrics
	OTPRequestsTotal      prometheus.Counter
	OTPVerificationsTotal *prometheus.CounterVec
	SessionConflictsTotal prometheus.Counter

	// Channel provisioning metrics
	ChannelsProvisionedTotal *prometheus.CounterVec
	BotInviteFailuresTotal   prometheus.Counter
	ProvisioningDuration     prometheus.Histogram

	// Subscription metrics
	SubscriptionsTotal        *prometheus.CounterVec
	SubscriptionsPromoted     prometheus.Counter
	SubscriptionsExpired      prometheus.Counter
	ActivationSweepDuration   prometheus.Histogram

	// Vendor adapter metrics
	VendorErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}

// NewMetrics creates a new Metrics instance with all counters and gauges
func NewMetrics() *Metrics {
	return &Metrics{
		OTPRequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creon_otp_requests_total",
			Help: "Total number of OTP send-code requests",
		}),
		OTPVerificationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creon_otp_verifications_total",
				Help: "Total number of OTP verification attempts",
			},
			[]string{"result"},
		),
		SessionConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creon_session_conflicts_total",
			Help: "Total number of vendor session conflicts requiring a session wipe",
		}),

		ChannelsProvisionedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creon_channels_provisioned_total",
				Help: "Total number of channels provisioned",
			},
			[]string{"mode"},
		),
		BotInviteFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creon_bot_invite_failures_total",
			Help: "Total number of soft bot-invitation failures",
		}),
		ProvisioningDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creon_channel_provisioning_duration_seconds",
			Help:    "Duration of channel provisioning operations",
			Buckets: prometheus.DefBuckets,
		}),

		SubscriptionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creon_subscriptions_total",
				Help: "Total number of subscriptions created",
			},
			[]string{"kind"},
		),
		SubscriptionsPromoted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creon_subscriptions_promoted_total",
			Help: "Total number of queued subscriptions promoted to active",
		}),
		SubscriptionsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creon_subscriptions_expired_total",
			Help: "Total number of subscriptions marked expired by the sweep",
		}),
		ActivationSweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creon_activation_sweep_duration_seconds",
			Help:    "Duration of subscription activation sweeps",
			Buckets: prometheus.DefBuckets,
		}),

		VendorErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creon_vendor_errors_total",
				Help: "Total number of vendor API errors by kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordOTPVerification records an OTP verification attempt outcome
func (m *Metrics) RecordOTPVerification(result string) {
	m.OTPVerificationsTotal.WithLabelValues(result).Inc()
}

// RecordProvisioned records a provisioned channel (mode: created|imported)
func (m *Metrics) RecordProvisioned(mode string) {
	m.ChannelsProvisionedTotal.WithLabelValues(mode).Inc()
}

// RecordSubscription records a created subscription (kind: new|upgrade)
func (m *Metrics) RecordSubscription(kind string) {
	m.SubscriptionsTotal.WithLabelValues(kind).Inc()
}

// RecordVendorError records a vendor error by kind
func (m *Metrics) RecordVendorError(kind string) {
	m.VendorErrorsTotal.WithLabelValues(kind).Inc()
}
