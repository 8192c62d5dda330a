/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

import (
	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
)

// Mapper resolves a submission's descriptor map into a pool of candidate
// credentials bucketed by schema URI, ready for matching.
type Mapper struct {
	resolver PathListResolver
}

// MapperOption sets an option on a Mapper.
type MapperOption func(m *Mapper)

// WithMapperPathResolver sets the path-query engine used to resolve
// descriptor-map paths.
func WithMapperPathResolver(resolver PathListResolver) MapperOption {
	return func(m *Mapper) {
		m.resolver = resolver
	}
}

// NewMapper returns a mapper that resolves descriptor-map paths with JSONPath
// unless overridden by options.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		resolver: NewJSONPathResolver(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Map resolves each descriptor-map entry of the submission against the full
// submission document and registers the resolved credentials under the first
// schema URI of the matching input descriptor. Entries referencing a
// descriptor ID that the definition does not declare are skipped. If multiple
// entries target the same schema URI, the last write wins.
func (m *Mapper) Map(submissionDoc map[string]interface{}, submission *PresentationSubmission,
	definition *PresentationDefinition) map[string][]interface{} {
	credentials := make(map[string][]interface{})

	if definition == nil || submission == nil {
		return credentials
	}

	for _, mapping := range submission.DescriptorMap {
		descriptor := definition.Descriptor(mapping.ID)
		if descriptor == nil {
			logger.Debug("Skipping descriptor-map entry: no such descriptor in the definition",
				logfields.WithDescriptorID(mapping.ID))

			continue
		}

		if len(descriptor.Schema) == 0 {
			logger.Debug("Skipping descriptor-map entry: descriptor declares no schema",
				logfields.WithDescriptorID(mapping.ID))

			continue
		}

		values, ok := m.resolver.ResolveAll(submissionDoc, mapping.Path)
		if !ok {
			logger.Debug("Skipping descriptor-map entry: path did not resolve",
				logfields.WithDescriptorID(mapping.ID), logfields.WithPath(mapping.Path))

			continue
		}

		credentials[descriptor.Schema[0].URI] = values

		logger.Debug("Registered candidate credentials",
			logfields.WithSchemaURI(descriptor.Schema[0].URI), logfields.WithTotal(len(values)))
	}

	return credentials
}
