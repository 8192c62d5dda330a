/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vp-verifier/pkg/presexch"
)

func TestMapper_Map(t *testing.T) {
	definition := &presexch.PresentationDefinition{
		ID: "def1",
		InputDescriptors: []*presexch.InputDescriptor{
			{ID: "d1", Schema: []*presexch.Schema{{URI: "T1"}, {URI: "T1-alias"}}},
			{ID: "d2", Schema: []*presexch.Schema{{URI: "T2"}}},
		},
	}

	submissionDoc := unmarshalDoc(t, `{
	  "presentation_submission": {
	    "descriptor_map": [
	      {"id": "d1", "path": "$.verifiableCredential[0]"},
	      {"id": "d2", "path": "$.verifiableCredential[1]"}
	    ]
	  },
	  "verifiableCredential": [
	    {"id": "cred1", "credentialSubject": {"age": 25}},
	    {"id": "cred2", "credentialSubject": {"name": "Alice"}}
	  ]
	}`)

	t.Run("buckets credentials under first schema URI", func(t *testing.T) {
		mapper := presexch.NewMapper()

		credentials := mapper.Map(submissionDoc, &presexch.PresentationSubmission{
			DescriptorMap: []*presexch.InputDescriptorMapping{
				{ID: "d1", Path: "$.verifiableCredential[0]"},
				{ID: "d2", Path: "$.verifiableCredential[1]"},
			},
		}, definition)

		require.Len(t, credentials, 2)
		require.Len(t, credentials["T1"], 1)
		require.Len(t, credentials["T2"], 1)
		require.Empty(t, credentials["T1-alias"])

		cred1, ok := credentials["T1"][0].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "cred1", cred1["id"])
	})

	t.Run("path targeting the credential list registers every credential", func(t *testing.T) {
		doc := unmarshalDoc(t, `{
		  "presentation_submission": {
		    "descriptor_map": [
		      {"id": "d1", "path": "$.verifiableCredential"}
		    ]
		  },
		  "verifiableCredential": [
		    {"id": "cred1"},
		    {"id": "cred2"},
		    {"id": "cred3"}
		  ]
		}`)

		mapper := presexch.NewMapper()

		credentials := mapper.Map(doc, &presexch.PresentationSubmission{
			DescriptorMap: []*presexch.InputDescriptorMapping{
				{ID: "d1", Path: "$.verifiableCredential"},
			},
		}, definition)

		require.Len(t, credentials["T1"], 3)

		for i, id := range []string{"cred1", "cred2", "cred3"} {
			cred, ok := credentials["T1"][i].(map[string]interface{})
			require.True(t, ok)
			require.Equal(t, id, cred["id"])
		}
	})

	t.Run("unknown descriptor ID skipped silently", func(t *testing.T) {
		mapper := presexch.NewMapper()

		credentials := mapper.Map(submissionDoc, &presexch.PresentationSubmission{
			DescriptorMap: []*presexch.InputDescriptorMapping{
				{ID: "d1", Path: "$.verifiableCredential[0]"},
				{ID: "no-such-descriptor", Path: "$.verifiableCredential[1]"},
			},
		}, definition)

		require.Len(t, credentials, 1)
		require.Len(t, credentials["T1"], 1)
	})

	t.Run("unresolvable path skipped", func(t *testing.T) {
		mapper := presexch.NewMapper()

		credentials := mapper.Map(submissionDoc, &presexch.PresentationSubmission{
			DescriptorMap: []*presexch.InputDescriptorMapping{
				{ID: "d1", Path: "$.verifiableCredential[9]"},
			},
		}, definition)

		require.Empty(t, credentials)
	})

	t.Run("last write wins for duplicate schema URI", func(t *testing.T) {
		mapper := presexch.NewMapper()

		credentials := mapper.Map(submissionDoc, &presexch.PresentationSubmission{
			DescriptorMap: []*presexch.InputDescriptorMapping{
				{ID: "d1", Path: "$.verifiableCredential[0]"},
				{ID: "d1", Path: "$.verifiableCredential[1]"},
			},
		}, definition)

		require.Len(t, credentials["T1"], 1)

		cred, ok := credentials["T1"][0].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "cred2", cred["id"])
	})

	t.Run("nil definition -> empty mapping", func(t *testing.T) {
		mapper := presexch.NewMapper()

		credentials := mapper.Map(submissionDoc, &presexch.PresentationSubmission{
			DescriptorMap: []*presexch.InputDescriptorMapping{
				{ID: "d1", Path: "$.verifiableCredential[0]"},
			},
		}, nil)

		require.Empty(t, credentials)
	})

	t.Run("nil submission -> empty mapping", func(t *testing.T) {
		mapper := presexch.NewMapper()

		require.Empty(t, mapper.Map(submissionDoc, nil, definition))
	})

	t.Run("descriptor without schema skipped", func(t *testing.T) {
		mapper := presexch.NewMapper()

		credentials := mapper.Map(submissionDoc, &presexch.PresentationSubmission{
			DescriptorMap: []*presexch.InputDescriptorMapping{
				{ID: "d3", Path: "$.verifiableCredential[0]"},
			},
		}, &presexch.PresentationDefinition{
			InputDescriptors: []*presexch.InputDescriptor{{ID: "d3"}},
		})

		require.Empty(t, credentials)
	})
}
