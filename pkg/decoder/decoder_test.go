/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package decoder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vp-verifier/pkg/decoder"
	"github.com/trustbloc/vp-verifier/pkg/internal/testutil"
)

//nolint:lll
const vpJSON = `{
  "@context": ["https://www.w3.org/2018/credentials/v1"],
  "type": ["VerifiablePresentation"],
  "holder": "did:example:ebfeb1f712ebc6f1c276e12ec21",
  "verifiableCredential": [{
    "@context": [
      "https://www.w3.org/2018/credentials/v1",
      "https://www.w3.org/2018/credentials/examples/v1"
    ],
    "id": "http://example.edu/credentials/1872",
    "type": ["VerifiableCredential", "UniversityDegreeCredential"],
    "issuer": "did:example:76e12ec712ebc6f1c221ebfeb1f",
    "issuanceDate": "2020-03-10T04:24:12.164Z",
    "credentialSubject": {
      "id": "did:example:ebfeb1f712ebc6f1c276e12ec21",
      "degree": {"type": "BachelorDegree"}
    }
  }]
}`

func TestDecoder_Decode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := decoder.New(testutil.GetLoader(t))

		presentation, err := d.Decode([]byte(vpJSON))
		require.NoError(t, err)
		require.NotNil(t, presentation)
		require.Equal(t, "did:example:ebfeb1f712ebc6f1c276e12ec21", presentation.Holder)
		require.Len(t, presentation.Credentials(), 1)
	})

	t.Run("error - invalid JSON", func(t *testing.T) {
		d := decoder.New(testutil.GetLoader(t))

		presentation, err := d.Decode([]byte("invalid"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "parse presentation")
		require.Nil(t, presentation)
	})

	t.Run("error - missing type", func(t *testing.T) {
		d := decoder.New(testutil.GetLoader(t))

		presentation, err := d.Decode([]byte(`{"@context": ["https://www.w3.org/2018/credentials/v1"]}`))
		require.Error(t, err)
		require.Nil(t, presentation)
	})
}
