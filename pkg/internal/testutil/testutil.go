/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package testutil

import (
	_ "embed"
	"testing"

	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	jld "github.com/hyperledger/aries-framework-go/pkg/doc/ld"
	"github.com/hyperledger/aries-framework-go/pkg/doc/ldcontext"
	ldstore "github.com/hyperledger/aries-framework-go/pkg/store/ld"
	"github.com/stretchr/testify/require"
)

var (
	//go:embed contexts/credentials-examples_v1.jsonld
	credentialExamples []byte
	//go:embed contexts/odrl.jsonld
	odrl []byte
)

type ldStoreProvider struct {
	contextStore        ldstore.ContextStore
	remoteProviderStore ldstore.RemoteProviderStore
}

func (p *ldStoreProvider) JSONLDContextStore() ldstore.ContextStore {
	return p.contextStore
}

func (p *ldStoreProvider) JSONLDRemoteProviderStore() ldstore.RemoteProviderStore {
	return p.remoteProviderStore
}

// GetLoader returns a JSON-LD document loader preloaded with the standard
// contexts, for use in tests.
func GetLoader(t *testing.T) *jld.DocumentLoader {
	t.Helper()

	contextStore, err := ldstore.NewContextStore(mem.NewProvider())
	require.NoError(t, err)

	remoteProviderStore, err := ldstore.NewRemoteProviderStore(mem.NewProvider())
	require.NoError(t, err)

	loader, err := jld.NewDocumentLoader(&ldStoreProvider{
		contextStore:        contextStore,
		remoteProviderStore: remoteProviderStore,
	}, jld.WithExtraContexts(
		ldcontext.Document{
			URL:     "https://www.w3.org/2018/credentials/examples/v1",
			Content: credentialExamples,
		},
		ldcontext.Document{
			URL:     "https://www.w3.org/ns/odrl.jsonld",
			Content: odrl,
		},
	))
	require.NoError(t, err)

	return loader
}
