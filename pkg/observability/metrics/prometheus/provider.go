/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustbloc/vp-verifier/pkg/observability/metrics"
)

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

// Provider implements a Prometheus metrics provider.
type Provider struct {
}

// NewProvider creates a new instance of the Prometheus metrics provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Create does nothing. Metrics are registered with the default Prometheus
// registerer on first use; exposing them is the enclosing server's concern.
func (pp *Provider) Create() error {
	return nil
}

// Destroy does nothing.
func (pp *Provider) Destroy() error {
	return nil
}

// Metrics returns supported metrics.
func (pp *Provider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// GetMetrics returns the metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the metrics for the submission verifier.
type PromMetrics struct {
	processSubmissionTime prometheus.Histogram
	revocationCheckTime   prometheus.Histogram
	descriptorMatchTime   prometheus.Histogram
}

// NewMetrics creates instances of Prometheus metrics.
func NewMetrics() *PromMetrics {
	pm := &PromMetrics{
		processSubmissionTime: newHistogram(
			metrics.Verifier, metrics.VerifierProcessSubmissionTimeMetric,
			"The time (in seconds) that it takes to process a verification submission.",
		),
		revocationCheckTime: newHistogram(
			metrics.Verifier, metrics.VerifierRevocationCheckTimeMetric,
			"The time (in seconds) that it takes to check the revocation status of the submitted credentials.",
		),
		descriptorMatchTime: newHistogram(
			metrics.Verifier, metrics.VerifierDescriptorMatchTimeMetric,
			"The time (in seconds) that it takes to match the submitted credentials against the input descriptors.",
		),
	}

	prometheus.MustRegister(
		pm.processSubmissionTime, pm.revocationCheckTime, pm.descriptorMatchTime,
	)

	return pm
}

// ProcessSubmissionTime records the time it takes to process a verification submission.
func (pm *PromMetrics) ProcessSubmissionTime(value time.Duration) {
	pm.processSubmissionTime.Observe(value.Seconds())
}

// RevocationCheckTime records the time it takes to check revocation status.
func (pm *PromMetrics) RevocationCheckTime(value time.Duration) {
	pm.revocationCheckTime.Observe(value.Seconds())
}

// DescriptorMatchTime records the time it takes to match input descriptors.
func (pm *PromMetrics) DescriptorMatchTime(value time.Duration) {
	pm.descriptorMatchTime.Observe(value.Seconds())
}

func newHistogram(subsystem, name, help string) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}
