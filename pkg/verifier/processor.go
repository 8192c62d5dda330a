/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifier processes verification submissions: it decodes a submitted
// verifiable presentation, gates it on revocation status and evaluates the
// submitted credentials against a verifier-declared presentation definition.
package verifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hyperledger/aries-framework-go/pkg/doc/verifiable"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
	"github.com/trustbloc/vp-verifier/pkg/presexch"
)

var logger = log.New("verifier")

const (
	submissionProperty  = "presentation_submission"
	credentialsProperty = "verifiableCredential"
)

// PresentationDecoder parses and verifies the wire envelope of a submitted
// verifiable presentation.
type PresentationDecoder interface {
	Decode(raw []byte) (*verifiable.Presentation, error)
}

type descriptorMatcher interface {
	Match(credentials map[string][]interface{},
		descriptors []*presexch.InputDescriptor) []*presexch.ValidationCheck
}

type submissionMapper interface {
	Map(doc map[string]interface{}, submission *presexch.PresentationSubmission,
		definition *presexch.PresentationDefinition) map[string][]interface{}
}

type metricsProvider interface {
	ProcessSubmissionTime(value time.Duration)
	RevocationCheckTime(value time.Duration)
	DescriptorMatchTime(value time.Duration)
}

// ProcessedSubmission is the durable audit artifact of one verification call:
// the decoded presentation, the full ordered evaluation report and the
// submission's descriptor map.
type ProcessedSubmission struct {
	Presentation  *verifiable.Presentation           `json:"presentation"`
	Checks        []*presexch.ValidationCheck        `json:"checks"`
	DescriptorMap []*presexch.InputDescriptorMapping `json:"descriptor_map"`
}

// Processor is the top-level orchestration of a verification submission.
type Processor struct {
	decoder PresentationDecoder
	gate    *revocationGate
	matcher descriptorMatcher
	mapper  submissionMapper
	metrics metricsProvider

	unmarshal func(data []byte, v interface{}) error
}

// Option sets an option on a Processor.
type Option func(p *Processor)

// WithMatcher overrides the descriptor matcher.
func WithMatcher(matcher descriptorMatcher) Option {
	return func(p *Processor) {
		p.matcher = matcher
	}
}

// WithMapper overrides the submission mapper.
func WithMapper(mapper submissionMapper) Option {
	return func(p *Processor) {
		p.mapper = mapper
	}
}

// New returns a submission processor that decodes presentations with the
// given decoder and checks revocation status with the given checker.
func New(decoder PresentationDecoder, checker RevocationChecker,
	metrics metricsProvider, opts ...Option) *Processor {
	p := &Processor{
		decoder:   decoder,
		gate:      &revocationGate{checker: checker},
		matcher:   presexch.NewMatcher(),
		mapper:    presexch.NewMapper(),
		metrics:   metrics,
		unmarshal: json.Unmarshal,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process validates the shape of the encoded submission, decodes the embedded
// presentation, rejects the submission if any credential is revoked, buckets
// the submitted credentials by schema URI and evaluates them against the
// definition's input descriptors. Steps run strictly in this order and the
// first failure aborts the pipeline.
func (p *Processor) Process(ctx context.Context, vpBytes []byte,
	definition *presexch.PresentationDefinition) (*ProcessedSubmission, error) {
	startTime := time.Now()

	defer func() {
		p.metrics.ProcessSubmissionTime(time.Since(startTime))
	}()

	if definition == nil {
		return nil, newBadRequestError(ErrMissingPolicy, "missing-policy",
			"no presentation definition was supplied for the submission")
	}

	submissionDoc, submission, err := p.parseSubmission(vpBytes)
	if err != nil {
		return nil, err
	}

	presentation, err := p.decoder.Decode(vpBytes)
	if err != nil {
		return nil, newBadRequestError(ErrMalformedSubmission, "malformed-submission",
			"the embedded presentation could not be decoded: "+err.Error())
	}

	checkStartTime := time.Now()

	if err := p.gate.check(ctx, presentation.Credentials()); err != nil {
		return nil, err
	}

	p.metrics.RevocationCheckTime(time.Since(checkStartTime))

	matchStartTime := time.Now()

	credentials := p.mapper.Map(submissionDoc, submission, definition)

	checks := p.matcher.Match(credentials, definition.InputDescriptors)

	p.metrics.DescriptorMatchTime(time.Since(matchStartTime))

	logger.Debug("Processed verification submission",
		logfields.WithDefinitionID(definition.ID), logfields.WithSubmissionID(submission.ID),
		logfields.WithTotal(len(checks)))

	return &ProcessedSubmission{
		Presentation:  presentation,
		Checks:        checks,
		DescriptorMap: submission.DescriptorMap,
	}, nil
}

// parseSubmission requires the encoded submission to contain both the
// presentation-submission section and the presentation's credentials.
func (p *Processor) parseSubmission(vpBytes []byte) (map[string]interface{},
	*presexch.PresentationSubmission, error) {
	var submissionDoc map[string]interface{}

	if err := p.unmarshal(vpBytes, &submissionDoc); err != nil {
		return nil, nil, newBadRequestError(ErrMalformedSubmission, "malformed-submission",
			"the submission is not a JSON object: "+err.Error())
	}

	rawSubmission, ok := submissionDoc[submissionProperty]
	if !ok {
		return nil, nil, newBadRequestError(ErrMalformedSubmission, "malformed-submission",
			"the submission does not contain a presentation_submission section")
	}

	if _, ok := submissionDoc[credentialsProperty]; !ok {
		return nil, nil, newBadRequestError(ErrMalformedSubmission, "malformed-submission",
			"the submission does not contain a presentation section")
	}

	submissionBytes, err := json.Marshal(rawSubmission)
	if err != nil {
		return nil, nil, newBadRequestError(ErrMalformedSubmission, "malformed-submission",
			"the presentation_submission section is not valid JSON: "+err.Error())
	}

	submission := &presexch.PresentationSubmission{}

	if err := p.unmarshal(submissionBytes, submission); err != nil {
		return nil, nil, newBadRequestError(ErrMalformedSubmission, "malformed-submission",
			"the presentation_submission section is malformed: "+err.Error())
	}

	return submissionDoc, submission, nil
}
