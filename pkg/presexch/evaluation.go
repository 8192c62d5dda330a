/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

// PathEvaluation records one attempt to resolve a path expression against a
// candidate credential. Failed attempts are retained for the audit trail.
type PathEvaluation struct {
	Path  string      `json:"path"`
	Match bool        `json:"match"`
	Value interface{} `json:"value,omitempty"`
}

// FieldEvaluation is the outcome of evaluating a single field constraint
// against a candidate credential. Exactly one of Matched and Unmatched is
// populated: Matched holds the single winning path evaluation, Unmatched
// holds the full ordered trail of failed alternatives.
type FieldEvaluation struct {
	Field     *Field            `json:"field"`
	Matched   *PathEvaluation   `json:"matched,omitempty"`
	Unmatched []*PathEvaluation `json:"unmatched,omitempty"`
}

// IsMatch returns true if one of the field's alternative paths matched.
func (e *FieldEvaluation) IsMatch() bool {
	return e.Matched != nil
}

// CredentialResult holds one candidate credential and the ordered field
// evaluations produced for it. Evaluation stops at the first failed field, so
// the list may be shorter than the descriptor's constraint list.
type CredentialResult struct {
	Credential  interface{}        `json:"credential"`
	Evaluations []*FieldEvaluation `json:"evaluations"`
}

// Satisfied returns true if the credential satisfies the descriptor that
// produced this result: every field evaluation reports a match. An empty
// evaluation list marks an unconditional pass (descriptor with no
// constraints).
func (r *CredentialResult) Satisfied() bool {
	for _, evaluation := range r.Evaluations {
		if !evaluation.IsMatch() {
			return false
		}
	}

	return true
}

// ValidationCheck is the full evaluation report for one input descriptor: one
// CredentialResult per candidate credential considered, in candidate order.
type ValidationCheck struct {
	DescriptorID string              `json:"descriptor_id"`
	Results      []*CredentialResult `json:"results"`
}

// Satisfied returns true if at least one candidate satisfies the descriptor.
func (c *ValidationCheck) Satisfied() bool {
	for _, result := range c.Results {
		if result.Satisfied() {
			return true
		}
	}

	return false
}
