package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	CertificatesIssued   prometheus.Counter
	CertificatesReused   prometheus.Counter
	CertificateDownloads prometheus.Counter
	DuplicatesRemoved    prometheus.Counter
	StudentsAdded        prometheus.Counter
	AuthFailures         prometheus.Counter
	ActiveSessions       prometheus.Gauge
	EndpointLatency      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CertificatesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certportal_certificates_issued_total",
			Help: "Total number of new certificate references issued",
		}),
		CertificatesReused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certportal_certificates_reused_total",
			Help: "Total number of issuance requests answered with an existing reference",
		}),
		CertificateDownloads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certportal_certificate_downloads_total",
			Help: "Total number of certificate downloads recorded",
		}),
		DuplicatesRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certportal_duplicate_references_removed_total",
			Help: "Total number of duplicate references removed by reconciliation",
		}),
		StudentsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certportal_students_added_total",
			Help: "Total number of students added to the roster",
		}),
		// - Auth failures per minute (rate)
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certportal_auth_failures_total",
			Help: "Total number of admin authentication failures",
		}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "certportal_active_admin_sessions",
			Help: "Current number of active admin sessions",
		}),
		// - Latency per endpoint (histogram)
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "certportal_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementCertificatesIssued increments the issued counter by 1
func (m *Metrics) IncrementCertificatesIssued() {
	m.CertificatesIssued.Inc()
}

func (m *Metrics) IncrementCertificatesReused() {
	m.CertificatesReused.Inc()
}

func (m *Metrics) IncrementCertificateDownloads() {
	m.CertificateDownloads.Inc()
}

// AddDuplicatesRemoved records how many references a reconciliation pass removed
func (m *Metrics) AddDuplicatesRemoved(count int) {
	m.DuplicatesRemoved.Add(float64(count))
}

func (m *Metrics) IncrementStudentsAdded() {
	m.StudentsAdded.Inc()
}

func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

func (m *Metrics) IncrementActiveSessions(count int) {
	m.ActiveSessions.Add(float64(count))
}

func (m *Metrics) DecrementActiveSessions(count int) {
	m.ActiveSessions.Sub(float64(count))
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
