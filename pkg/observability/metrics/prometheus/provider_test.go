/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	p := NewProvider()
	require.NoError(t, p.Create())

	m := p.Metrics()
	require.NotNil(t, m)

	// The same instance is returned on subsequent calls.
	require.Equal(t, m, p.Metrics())
	require.Equal(t, m, GetMetrics())

	require.NotPanics(t, func() {
		m.ProcessSubmissionTime(time.Second)
		m.RevocationCheckTime(time.Second)
		m.DescriptorMatchTime(time.Second)
	})

	require.NoError(t, p.Destroy())
}
