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

func TestJSONSchemaValidator_Validate(t *testing.T) {
	validator := presexch.NewJSONSchemaValidator()

	t.Run("number with minimum", func(t *testing.T) {
		filter := &presexch.Filter{Type: "number", Minimum: float64Ptr(18)}

		require.NoError(t, validator.Validate(filter, 25))

		err := validator.Validate(filter, 15)
		require.Error(t, err)
		require.Contains(t, err.Error(), "value does not satisfy filter")
	})

	t.Run("string with pattern", func(t *testing.T) {
		filter := &presexch.Filter{Type: "string", Pattern: "^did:[a-z]+:.+$"}

		require.NoError(t, validator.Validate(filter, "did:example:123"))
		require.Error(t, validator.Validate(filter, "example:123"))
	})

	t.Run("const", func(t *testing.T) {
		filter := &presexch.Filter{Const: "PermanentResident"}

		require.NoError(t, validator.Validate(filter, "PermanentResident"))
		require.Error(t, validator.Validate(filter, "Resident"))
	})

	t.Run("enum", func(t *testing.T) {
		filter := &presexch.Filter{Enum: []interface{}{"red", "green"}}

		require.NoError(t, validator.Validate(filter, "green"))
		require.Error(t, validator.Validate(filter, "blue"))
	})

	t.Run("object with required properties", func(t *testing.T) {
		filter := &presexch.Filter{Type: "object", Required: []string{"degree"}}

		require.NoError(t, validator.Validate(filter, map[string]interface{}{"degree": "BSc"}))
		require.Error(t, validator.Validate(filter, map[string]interface{}{"name": "Alice"}))
	})

	t.Run("wrong type", func(t *testing.T) {
		filter := &presexch.Filter{Type: "number"}

		require.Error(t, validator.Validate(filter, "25"))
	})
}

func float64Ptr(v float64) *float64 {
	return &v
}
