/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verification implements storage for processed verification
// submissions, the durable audit artifact of a verification call.
package verification

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/aries-framework-go/pkg/doc/verifiable"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/piprate/json-gold/ld"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
	orberrors "github.com/trustbloc/vp-verifier/pkg/errors"
	"github.com/trustbloc/vp-verifier/pkg/presexch"
	storehelper "github.com/trustbloc/vp-verifier/pkg/store"
	"github.com/trustbloc/vp-verifier/pkg/verifier"
)

const (
	namespace = "verification-result"
	index     = "definitionID"

	// ExpiryTagName is the tag under which the expiry time of a stored
	// submission is set when a retention period is configured.
	ExpiryTagName = "expiry"
)

var logger = log.New("verification-store")

type documentLoader interface {
	LoadDocument(u string) (*ld.RemoteDocument, error)
}

// Option sets an option on the store.
type Option func(s *Store)

// WithRetentionPeriod sets the period after which stored submissions become
// eligible for removal by the expiry service. By default submissions are
// retained indefinitely.
func WithRetentionPeriod(period time.Duration) Option {
	return func(s *Store) {
		s.retentionPeriod = period
	}
}

// New creates a new processed-submission store.
func New(provider storage.Provider, loader documentLoader, opts ...Option) (*Store, error) {
	store, err := storehelper.Open(provider, namespace,
		storehelper.NewTagGroup(index),
		storehelper.NewTagGroup(ExpiryTagName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open verification result store: %w", err)
	}

	s := &Store{
		store:          store,
		documentLoader: loader,
		marshal:        json.Marshal,
		unmarshal:      json.Unmarshal,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Store is db implementation of the processed-submission store.
type Store struct {
	store           storage.Store
	documentLoader  documentLoader
	retentionPeriod time.Duration
	marshal         func(v interface{}) ([]byte, error)
	unmarshal       func(data []byte, v interface{}) error
}

type expiryService interface {
	Register(store storage.Store, expiryTagName, storeName string)
}

// RegisterExpiry registers this store with the given expiry service so that
// submissions past their retention period are removed.
func (s *Store) RegisterExpiry(service expiryService) {
	service.Register(s.store, ExpiryTagName, namespace)
}

//nolint:tagliatelle
type storedSubmission struct {
	DefinitionID  string                             `json:"definitionID"`
	Presentation  json.RawMessage                    `json:"presentation"`
	Checks        []*presexch.ValidationCheck        `json:"checks"`
	DescriptorMap []*presexch.InputDescriptorMapping `json:"descriptor_map"`
	Expiry        int64                              `json:"expiry,omitempty"`
}

// Put saves a processed submission under a generated ID, indexed by the
// presentation definition that produced it. The ID is returned.
func (s *Store) Put(definitionID string, result *verifier.ProcessedSubmission) (string, error) {
	presentationBytes, err := result.Presentation.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("marshal presentation: %w", err)
	}

	encodedDefinitionID := base64.RawURLEncoding.EncodeToString([]byte(definitionID))

	record := &storedSubmission{
		DefinitionID:  encodedDefinitionID,
		Presentation:  presentationBytes,
		Checks:        result.Checks,
		DescriptorMap: result.DescriptorMap,
	}

	tags := []storage.Tag{{Name: index, Value: encodedDefinitionID}}

	if s.retentionPeriod > 0 {
		record.Expiry = time.Now().Add(s.retentionPeriod).Unix()

		tags = append(tags, storage.Tag{Name: ExpiryTagName, Value: strconv.FormatInt(record.Expiry, 10)})
	}

	recordBytes, err := s.marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal processed submission: %w", err)
	}

	id := uuid.New().String()

	if err := s.store.Put(id, recordBytes, tags...); err != nil {
		return "", orberrors.NewTransient(fmt.Errorf("failed to store processed submission: %w", err))
	}

	logger.Debug("Stored processed submission", logfields.WithKey(id),
		logfields.WithDefinitionID(definitionID))

	return id, nil
}

// Get retrieves a processed submission by ID.
func (s *Store) Get(id string) (*verifier.ProcessedSubmission, error) {
	recordBytes, err := s.store.Get(id)
	if err != nil {
		return nil, orberrors.NewTransient(fmt.Errorf("failed to get processed submission: %w", err))
	}

	return s.parseRecord(recordBytes)
}

// GetByDefinitionID retrieves all processed submissions produced for the
// given presentation definition.
func (s *Store) GetByDefinitionID(definitionID string) ([]*verifier.ProcessedSubmission, error) {
	query := fmt.Sprintf("%s:%s", index, base64.RawURLEncoding.EncodeToString([]byte(definitionID)))

	iter, err := s.store.Query(query)
	if err != nil {
		return nil, orberrors.NewTransient(fmt.Errorf("failed to query processed submissions: %w", err))
	}

	defer func() {
		if e := iter.Close(); e != nil {
			logger.Warn("Error closing iterator", log.WithError(e))
		}
	}()

	var results []*verifier.ProcessedSubmission

	ok, err := iter.Next()
	if err != nil {
		return nil, orberrors.NewTransient(fmt.Errorf("iterator error for definition [%s]: %w",
			definitionID, err))
	}

	for ok {
		recordBytes, err := iter.Value()
		if err != nil {
			return nil, orberrors.NewTransient(fmt.Errorf("failed to get iterator value: %w", err))
		}

		result, err := s.parseRecord(recordBytes)
		if err != nil {
			return nil, err
		}

		results = append(results, result)

		ok, err = iter.Next()
		if err != nil {
			return nil, orberrors.NewTransient(fmt.Errorf("iterator error for definition [%s]: %w",
				definitionID, err))
		}
	}

	return results, nil
}

func (s *Store) parseRecord(recordBytes []byte) (*verifier.ProcessedSubmission, error) {
	record := &storedSubmission{}

	if err := s.unmarshal(recordBytes, record); err != nil {
		return nil, fmt.Errorf("unmarshal processed submission: %w", err)
	}

	presentation, err := verifiable.ParsePresentation(record.Presentation,
		verifiable.WithPresDisabledProofCheck(),
		verifiable.WithPresJSONLDDocumentLoader(s.documentLoader),
	)
	if err != nil {
		return nil, fmt.Errorf("parse stored presentation: %w", err)
	}

	return &verifier.ProcessedSubmission{
		Presentation:  presentation,
		Checks:        record.Checks,
		DescriptorMap: record.DescriptorMap,
	}, nil
}
