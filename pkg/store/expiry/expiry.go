/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package expiry provides a service that periodically sweeps registered
// stores and removes records whose retention period has elapsed.
package expiry

import (
	"fmt"
	"time"

	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
	"github.com/trustbloc/vp-verifier/pkg/lifecycle"
)

var logger = log.New("expiry-service")

type registeredStore struct {
	store   storage.Store
	tagName string
	name    string
}

// Service periodically polls registered stores and removes records past
// their expiry time.
type Service struct {
	*lifecycle.Lifecycle

	done     chan struct{}
	stores   []registeredStore
	interval time.Duration
}

// NewService returns a new expiry service that checks for expired records at
// the given interval. Register each store to be swept before calling Start.
func NewService(interval time.Duration) *Service {
	s := &Service{
		done:     make(chan struct{}),
		interval: interval,
	}

	s.Lifecycle = lifecycle.New("expiry",
		lifecycle.WithStart(s.start),
		lifecycle.WithStop(s.stop))

	return s
}

// Register adds a store to this expiry service. Records in the store must
// carry the given tag, whose value is a Unix timestamp after which the
// record may be removed. The name identifies the store in log messages.
func (s *Service) Register(store storage.Store, expiryTagName, storeName string) {
	s.stores = append(s.stores, registeredStore{
		store:   store,
		tagName: expiryTagName,
		name:    storeName,
	})
}

func (s *Service) start() {
	go s.refresh()
}

func (s *Service) stop() {
	close(s.done)
}

func (s *Service) refresh() {
	for {
		select {
		case <-time.After(s.interval):
			for i := range s.stores {
				s.stores[i].deleteExpiredRecords()
			}
		case <-s.done:
			logger.Debug("Stopping expiry service.")

			return
		}
	}
}

func (r *registeredStore) deleteExpiredRecords() {
	expression := fmt.Sprintf("%s<=%d", r.tagName, time.Now().Unix())

	iterator, err := r.store.Query(expression)
	if err != nil {
		logger.Error("Failed to query store for expired records", logfields.WithStoreName(r.name),
			log.WithError(err))

		return
	}

	defer func() {
		if e := iterator.Close(); e != nil {
			logger.Warn("Error closing iterator", log.WithError(e))
		}
	}()

	var keys []string

	more, err := iterator.Next()
	if err != nil {
		logger.Error("Iterator error while sweeping store", logfields.WithStoreName(r.name),
			log.WithError(err))

		return
	}

	for more {
		key, err := iterator.Key()
		if err != nil {
			logger.Error("Failed to get key from iterator", logfields.WithStoreName(r.name),
				log.WithError(err))

			return
		}

		keys = append(keys, key)

		more, err = iterator.Next()
		if err != nil {
			logger.Error("Iterator error while sweeping store", logfields.WithStoreName(r.name),
				log.WithError(err))

			return
		}
	}

	if len(keys) == 0 {
		return
	}

	operations := make([]storage.Operation, len(keys))

	for i, key := range keys {
		operations[i] = storage.Operation{Key: key}
	}

	if err := r.store.Batch(operations); err != nil {
		logger.Error("Failed to delete expired records", logfields.WithStoreName(r.name),
			log.WithError(err))

		return
	}

	logger.Debug("Deleted expired records", logfields.WithStoreName(r.name),
		logfields.WithTotal(len(keys)))
}
