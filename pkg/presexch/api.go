/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package presexch implements the matching engine for Presentation Exchange
// (https://identity.foundation/presentation-exchange/): a verifier-declared
// presentation definition is evaluated against the credentials contained in a
// submitted verifiable presentation.
package presexch

// PresentationDefinition is a verifier-declared policy enumerating the required
// credential types and their field constraints.
type PresentationDefinition struct {
	ID               string             `json:"id,omitempty"`
	Name             string             `json:"name,omitempty"`
	Purpose          string             `json:"purpose,omitempty"`
	InputDescriptors []*InputDescriptor `json:"input_descriptors,omitempty"`
}

// Descriptor returns the input descriptor with the given ID, or nil if the
// definition does not declare one.
func (d *PresentationDefinition) Descriptor(id string) *InputDescriptor {
	for _, descriptor := range d.InputDescriptors {
		if descriptor.ID == id {
			return descriptor
		}
	}

	return nil
}

// InputDescriptor is one policy slot within a presentation definition. It
// identifies the acceptable credential schemas and the constraints that a
// candidate credential must satisfy. A descriptor with no constraints is
// satisfied by any candidate of a matching schema.
type InputDescriptor struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	Purpose     string       `json:"purpose,omitempty"`
	Group       []string     `json:"group,omitempty"`
	Schema      []*Schema    `json:"schema,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty"`
}

// Schema identifies a candidate credential type by URI.
type Schema struct {
	URI     string `json:"uri,omitempty"`
	Name    string `json:"name,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// Constraints holds the ordered field constraints of an input descriptor.
type Constraints struct {
	Fields []*Field `json:"fields,omitempty"`
}

// Field requires that some value, reachable via one of several alternative
// path expressions, satisfies an optional filter. Paths are evaluated in
// declared order and the first one that resolves to a value passing the
// filter wins.
type Field struct {
	Path    []string `json:"path,omitempty"`
	Purpose string   `json:"purpose,omitempty"`
	Filter  *Filter  `json:"filter,omitempty"`
}

// Filter is a JSON Schema predicate applied to a resolved field value.
type Filter struct {
	Type       string                 `json:"type,omitempty"`
	Format     string                 `json:"format,omitempty"`
	Pattern    string                 `json:"pattern,omitempty"`
	Minimum    *float64               `json:"minimum,omitempty"`
	Maximum    *float64               `json:"maximum,omitempty"`
	MinLength  *int                   `json:"minLength,omitempty"`
	MaxLength  *int                   `json:"maxLength,omitempty"`
	Const      interface{}            `json:"const,omitempty"`
	Enum       []interface{}          `json:"enum,omitempty"`
	Required   []string               `json:"required,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// PresentationSubmission is the holder-supplied structure mapping each input
// descriptor to the location of the corresponding credential within the
// submitted presentation.
// https://identity.foundation/presentation-exchange/#presentation-submission.
type PresentationSubmission struct {
	ID            string                    `json:"id,omitempty"`
	DefinitionID  string                    `json:"definition_id,omitempty"`
	DescriptorMap []*InputDescriptorMapping `json:"descriptor_map"`
}

// InputDescriptorMapping maps an input descriptor ID to the JSONPath of the
// corresponding credential within the submission.
type InputDescriptorMapping struct {
	ID     string `json:"id"`
	Format string `json:"format,omitempty"`
	Path   string `json:"path"`
}
