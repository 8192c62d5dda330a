/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/trustbloc/vp-verifier/pkg/observability/metrics"
)

// Provider implements a no-op metrics provider.
type Provider struct {
}

// NewProvider creates a new instance of the no-op metrics provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Create does nothing.
func (pp *Provider) Create() error {
	return nil
}

// Destroy does nothing.
func (pp *Provider) Destroy() error {
	return nil
}

// Metrics returns supported metrics.
func (pp *Provider) Metrics() metrics.Metrics {
	return &NoOpMetrics{}
}

// NoOpMetrics provides a default no-operation implementation of the Metrics interface.
type NoOpMetrics struct {
}

// ProcessSubmissionTime does nothing.
func (m *NoOpMetrics) ProcessSubmissionTime(value time.Duration) {
}

// RevocationCheckTime does nothing.
func (m *NoOpMetrics) RevocationCheckTime(value time.Duration) {
}

// DescriptorMatchTime does nothing.
func (m *NoOpMetrics) DescriptorMatchTime(value time.Duration) {
}
