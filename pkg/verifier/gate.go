/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"fmt"
	"sync"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
	orberrors "github.com/trustbloc/vp-verifier/pkg/errors"
)

// RevocationChecker looks up the revocation status of a single credential.
// The lookup may be a remote call and may fail independently of the status.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, credential interface{}) (bool, error)
}

// revocationGate pre-filters a presentation's credentials, failing the whole
// submission if any credential is revoked. Lookups run concurrently; the
// outcome is the boolean-or over all checks.
type revocationGate struct {
	checker RevocationChecker
}

// check returns ErrCredentialsRevoked if any of the given credentials is
// revoked. A failed status lookup fails closed: it aborts the verification
// with a transient error so the caller may retry, rather than treating the
// credential as valid.
func (g *revocationGate) check(ctx context.Context, credentials []interface{}) error {
	revoked := make([]bool, len(credentials))
	errs := make([]error, len(credentials))

	var wg sync.WaitGroup

	for i, credential := range credentials {
		wg.Add(1)

		go func(i int, credential interface{}) {
			defer wg.Done()

			revoked[i], errs[i] = g.checker.IsRevoked(ctx, credential)
		}(i, credential)
	}

	wg.Wait()

	for i := range credentials {
		if revoked[i] {
			logger.Info("Rejecting submission: revoked credential",
				logfields.WithTotal(len(credentials)))

			return newError(ErrCredentialsRevoked, "revoked-credentials",
				"one or more of the submitted credentials is revoked")
		}
	}

	for i := range credentials {
		if errs[i] != nil {
			return orberrors.NewTransient(fmt.Errorf("revocation status lookup: %w", errs[i]))
		}
	}

	return nil
}
