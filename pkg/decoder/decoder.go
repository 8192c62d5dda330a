/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package decoder provides the default presentation decoder used by the
// submission processor. Proof verification is the responsibility of a
// collaborating subsystem, so proofs are not checked here.
package decoder

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/pkg/doc/verifiable"
	"github.com/piprate/json-gold/ld"
)

type documentLoader interface {
	LoadDocument(u string) (*ld.RemoteDocument, error)
}

// Decoder parses verifiable presentations from their JSON wire form.
type Decoder struct {
	documentLoader documentLoader
}

// New returns a presentation decoder that resolves JSON-LD contexts with the
// given document loader.
func New(documentLoader documentLoader) *Decoder {
	return &Decoder{documentLoader: documentLoader}
}

// Decode parses the given verifiable presentation.
func (d *Decoder) Decode(raw []byte) (*verifiable.Presentation, error) {
	presentation, err := verifiable.ParsePresentation(raw,
		verifiable.WithPresDisabledProofCheck(),
		verifiable.WithPresJSONLDDocumentLoader(d.documentLoader),
	)
	if err != nil {
		return nil, fmt.Errorf("parse presentation: %w", err)
	}

	return presentation, nil
}
