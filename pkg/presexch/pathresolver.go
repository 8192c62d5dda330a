/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

import (
	"github.com/PaesslerAG/jsonpath"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
)

var logger = log.New("presexch")

// PathResolver evaluates a path expression against a JSON document. The
// engine is pluggable; implementations must report a malformed expression or
// an engine failure as "no match" rather than an error so that one bad path
// does not abort evaluation of sibling alternatives.
type PathResolver interface {
	// Resolve returns the first value matching the given path expression and
	// true, or nil and false if nothing matched.
	Resolve(doc interface{}, path string) (interface{}, bool)
}

// PathListResolver resolves a path expression to the full list of matching
// values, so that an expression targeting several credentials yields all of
// them.
type PathListResolver interface {
	// ResolveAll returns every value matching the given path expression and
	// true, or nil and false if nothing matched.
	ResolveAll(doc interface{}, path string) ([]interface{}, bool)
}

// JSONPathResolver resolves path expressions with JSONPath semantics.
type JSONPathResolver struct {
}

// NewJSONPathResolver returns a JSONPath-based path resolver.
func NewJSONPathResolver() *JSONPathResolver {
	return &JSONPathResolver{}
}

// Resolve evaluates the given JSONPath expression against doc and returns the
// first matched value. Query errors are logged and reported as "no match".
func (r *JSONPathResolver) Resolve(doc interface{}, path string) (interface{}, bool) {
	values, ok := r.ResolveAll(doc, path)
	if !ok {
		return nil, false
	}

	return values[0], true
}

// ResolveAll evaluates the given JSONPath expression against doc and returns
// every matched value. A single matched value yields a one-element list.
// Query errors are logged and reported as "no match".
func (r *JSONPathResolver) ResolveAll(doc interface{}, path string) ([]interface{}, bool) {
	value, err := jsonpath.Get(path, doc)
	if err != nil {
		logger.Debug("Path expression did not resolve", logfields.WithPath(path), log.WithError(err))

		return nil, false
	}

	// Wildcard and filter expressions yield a list.
	if values, ok := value.([]interface{}); ok {
		if len(values) == 0 {
			return nil, false
		}

		return values, true
	}

	return []interface{}{value}, true
}
