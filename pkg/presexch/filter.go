/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// FilterValidator validates a resolved field value against a filter. The
// validator is pluggable; any conformant JSON Schema implementation may be
// used.
type FilterValidator interface {
	// Validate returns nil if the value satisfies the filter.
	Validate(filter *Filter, value interface{}) error
}

// JSONSchemaValidator validates filter predicates as JSON Schema documents.
type JSONSchemaValidator struct {
}

// NewJSONSchemaValidator returns a JSON Schema based filter validator.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// Validate applies the filter to the given value as a JSON Schema document.
func (v *JSONSchemaValidator) Validate(filter *Filter, value interface{}) error {
	schemaBytes, err := json.Marshal(filter)
	if err != nil {
		return fmt.Errorf("marshal filter: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewGoLoader(value))
	if err != nil {
		return fmt.Errorf("validate value against filter: %w", err)
	}

	if !result.Valid() {
		return fmt.Errorf("value does not satisfy filter: %s", describeErrors(result))
	}

	return nil
}

func describeErrors(result *gojsonschema.Result) string {
	var msg string

	for i, desc := range result.Errors() {
		if i > 0 {
			msg += "; "
		}

		msg += desc.String()
	}

	return msg
}
