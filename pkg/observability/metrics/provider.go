/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"
)

// Constants used by the metrics providers.
const (
	// Namespace Organization namespace.
	Namespace = "vpverifier"

	// Verifier submission verifier.
	Verifier                            = "verifier"
	VerifierProcessSubmissionTimeMetric = "process_submission_seconds"
	VerifierRevocationCheckTimeMetric   = "revocation_check_seconds"
	VerifierDescriptorMatchTimeMetric   = "descriptor_match_seconds"
)

// Provider is an implementation-agnostic metrics provider.
type Provider interface {
	// Create creates/initializes the metrics instance.
	Create() error
	// Metrics returns the metrics instance.
	Metrics() Metrics
	// Destroy destroys the metrics instance.
	Destroy() error
}

// Metrics is the metrics interface of the submission verifier.
type Metrics interface {
	ProcessSubmissionTime(value time.Duration)
	RevocationCheckTime(value time.Duration)
	DescriptorMatchTime(value time.Duration)
}
