/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

import (
	"sync"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
)

// Matcher evaluates the input descriptors of a presentation definition
// against a pool of schema-bucketed candidate credentials.
type Matcher struct {
	resolver  PathResolver
	validator FilterValidator
}

// MatcherOption sets an option on a Matcher.
type MatcherOption func(m *Matcher)

// WithPathResolver sets the path-query engine used to resolve field paths.
func WithPathResolver(resolver PathResolver) MatcherOption {
	return func(m *Matcher) {
		m.resolver = resolver
	}
}

// WithFilterValidator sets the validator used to apply field filters.
func WithFilterValidator(validator FilterValidator) MatcherOption {
	return func(m *Matcher) {
		m.validator = validator
	}
}

// NewMatcher returns a matcher that resolves field paths with JSONPath and
// validates filters as JSON Schema, unless overridden by options.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{
		resolver:  NewJSONPathResolver(),
		validator: NewJSONSchemaValidator(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Match evaluates each descriptor, in definition order, against the
// candidates bucketed under its declared schema URIs. A descriptor whose
// schema URIs have no candidates in the pool produces a check with an empty
// result list. Candidates are evaluated concurrently; results are returned in
// candidate order.
func (m *Matcher) Match(credentials map[string][]interface{},
	descriptors []*InputDescriptor) []*ValidationCheck {
	checks := make([]*ValidationCheck, 0, len(descriptors))

	for _, descriptor := range descriptors {
		var candidates []interface{}

		for _, schema := range descriptor.Schema {
			candidates = append(candidates, credentials[schema.URI]...)
		}

		checks = append(checks, &ValidationCheck{
			DescriptorID: descriptor.ID,
			Results:      m.evaluateCandidates(descriptor, candidates),
		})
	}

	return checks
}

// evaluateCandidates fans out over the candidates and joins the results back
// in candidate order.
func (m *Matcher) evaluateCandidates(descriptor *InputDescriptor,
	candidates []interface{}) []*CredentialResult {
	results := make([]*CredentialResult, len(candidates))

	var wg sync.WaitGroup

	for i, candidate := range candidates {
		wg.Add(1)

		go func(i int, candidate interface{}) {
			defer wg.Done()

			results[i] = m.evaluateDescriptor(descriptor, candidate)
		}(i, candidate)
	}

	wg.Wait()

	if results == nil {
		results = []*CredentialResult{}
	}

	return results
}

// evaluateDescriptor applies all of the descriptor's field constraints to the
// candidate with all-or-nothing semantics: evaluation stops at the first
// field that fails, so the result list ends either with that failed
// evaluation or with a match for the final field. A descriptor with no
// constraints is satisfied unconditionally, marked by an empty evaluation
// list.
func (m *Matcher) evaluateDescriptor(descriptor *InputDescriptor, candidate interface{}) *CredentialResult {
	result := &CredentialResult{
		Credential:  candidate,
		Evaluations: []*FieldEvaluation{},
	}

	if descriptor.Constraints == nil || len(descriptor.Constraints.Fields) == 0 {
		return result
	}

	for _, field := range descriptor.Constraints.Fields {
		evaluation := m.evaluateField(candidate, field)

		result.Evaluations = append(result.Evaluations, evaluation)

		if !evaluation.IsMatch() {
			logger.Debug("Candidate does not satisfy field constraint",
				logfields.WithDescriptorID(descriptor.ID))

			break
		}
	}

	return result
}

// evaluateField tries the field's alternative paths in declared order and
// stops at the first one whose resolved value passes the filter. If no
// alternative matches, the full ordered trail of failed attempts is returned.
// A field declaring no paths cannot match; its trail is empty.
func (m *Matcher) evaluateField(candidate interface{}, field *Field) *FieldEvaluation {
	trail := []*PathEvaluation{}

	for _, path := range field.Path {
		value, ok := m.resolver.Resolve(candidate, path)
		if !ok {
			trail = append(trail, &PathEvaluation{Path: path, Match: false})

			continue
		}

		if field.Filter != nil {
			if err := m.validator.Validate(field.Filter, value); err != nil {
				logger.Debug("Resolved value does not satisfy filter",
					logfields.WithPath(path))

				trail = append(trail, &PathEvaluation{Path: path, Match: false, Value: value})

				continue
			}
		}

		return &FieldEvaluation{
			Field:   field,
			Matched: &PathEvaluation{Path: path, Match: true, Value: value},
		}
	}

	return &FieldEvaluation{
		Field:     field,
		Unmatched: trail,
	}
}
