/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package store provides helpers for opening Aries storage providers. When
// the underlying provider is MongoDB, vendor-specific APIs are used to create
// proper indexes and to store records as queryable JSON documents.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyperledger/aries-framework-go-ext/component/storage/mongodb"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
)

var logger = log.New("store")

const mongoIDField = "_id"

// TagGroup defines a group of tags that may be used to create a compound index.
type TagGroup []string

// NewTagGroup is a convenience function that returns a TagGroup from the given set of tags.
func NewTagGroup(tags ...string) TagGroup {
	return tags
}

// Open opens the store for the given namespace and creates the necessary
// indexes. For MongoDB providers the returned store uses vendor-specific APIs
// so that records are stored as JSON documents and indexed natively.
func Open(provider storage.Provider, namespace string, tagGroups ...TagGroup) (storage.Store, error) {
	store, err := provider.OpenStore(namespace)
	if err != nil {
		return nil, fmt.Errorf("open store [%s]: %w", namespace, err)
	}

	mp, ok := provider.(indexedProvider)
	if !ok {
		err := provider.SetStoreConfig(namespace, storage.StoreConfiguration{TagNames: uniqueTags(tagGroups)})
		if err != nil {
			return nil, fmt.Errorf("set store configuration for [%s]: %w", namespace, err)
		}

		return store, nil
	}

	logger.Info("Using MongoDB optimized interface", logfields.WithStoreName(namespace))

	ms := newMongoStore(namespace, mp, store)

	if err := ms.createIndexes(tagGroups); err != nil {
		return nil, fmt.Errorf("create MongoDB indexes for [%s]: %w", namespace, err)
	}

	return ms, nil
}

type documentStore interface {
	PutAsJSON(key string, value interface{}) error
	BulkWrite(models []mongo.WriteModel, opts ...*mongoopts.BulkWriteOptions) error
	GetAsRawMap(id string) (map[string]interface{}, error)
	GetBulkAsRawMap(ids ...string) ([]map[string]interface{}, error)
	QueryCustom(filter interface{}, options ...*mongoopts.FindOptions) (mongodb.Iterator, error)
	CreateMongoDBFindOptions(options []storage.QueryOption, isJSONQuery bool) *mongoopts.FindOptions
}

type indexedProvider interface {
	CreateCustomIndexes(storeName string, model ...mongo.IndexModel) error
}

type mongoStore struct {
	namespace string
	provider  indexedProvider
	store     storage.Store
	ds        documentStore
	marshal   func(v interface{}) ([]byte, error)
}

func newMongoStore(namespace string, provider indexedProvider, store storage.Store) *mongoStore {
	ds, ok := store.(documentStore)
	if !ok {
		// If this happens then it's a bug.
		panic(fmt.Errorf("expecting MongoDB store for [%s]", namespace))
	}

	return &mongoStore{
		namespace: namespace,
		provider:  provider,
		store:     store,
		ds:        ds,
		marshal:   json.Marshal,
	}
}

func (s *mongoStore) createIndexes(tagGroups []TagGroup) error {
	for _, tagGroup := range tagGroups {
		logger.Debug("Creating MongoDB index", logfields.WithStoreName(s.namespace),
			logfields.WithTagName(strings.Join(tagGroup, ",")))

		keys := make(bson.D, len(tagGroup))

		for i, tag := range tagGroup {
			keys[i] = bson.E{Key: tag, Value: 1}
		}

		if err := s.provider.CreateCustomIndexes(s.namespace, mongo.IndexModel{Keys: keys}); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// Put persists the given key-value pair as a JSON document. Tags are unused
// since the document fields themselves are indexed.
func (s *mongoStore) Put(key string, value []byte, _ ...storage.Tag) error {
	var doc map[string]interface{}

	if err := json.Unmarshal(value, &doc); err != nil {
		return fmt.Errorf("unmarshal document [%s-%s]: %w", s.namespace, key, err)
	}

	if err := s.ds.PutAsJSON(key, doc); err != nil {
		return fmt.Errorf("put as JSON [%s-%s]: %w", s.namespace, key, err)
	}

	return nil
}

// Get returns the value for the given key.
func (s *mongoStore) Get(key string) ([]byte, error) {
	doc, err := s.ds.GetAsRawMap(key)
	if err != nil {
		return nil, fmt.Errorf("get [%s-%s]: %w", s.namespace, key, err)
	}

	delete(doc, mongoIDField)

	return s.marshal(doc)
}

// GetBulk returns the values for the given keys.
func (s *mongoStore) GetBulk(keys ...string) ([][]byte, error) {
	docs, err := s.ds.GetBulkAsRawMap(keys...)
	if err != nil {
		return nil, fmt.Errorf("get bulk [%s]: %w", s.namespace, err)
	}

	docsBytes := make([][]byte, len(docs))

	for i, doc := range docs {
		if doc == nil {
			continue
		}

		delete(doc, mongoIDField)

		docBytes, err := s.marshal(doc)
		if err != nil {
			return nil, err
		}

		docsBytes[i] = docBytes
	}

	return docsBytes, nil
}

// Query searches the store using the given expression and returns an iterator
// over the matching values.
func (s *mongoStore) Query(expression string, options ...storage.QueryOption) (storage.Iterator, error) {
	filter, err := mongodb.PrepareFilter(strings.Split(expression, "&&"), true)
	if err != nil {
		return nil, fmt.Errorf("convert expression [%s] to MongoDB filter: %w", expression, err)
	}

	iterator, err := s.ds.QueryCustom(filter, s.ds.CreateMongoDBFindOptions(options, true))
	if err != nil {
		return nil, fmt.Errorf("query [%s] with expression [%s]: %w", s.namespace, expression, err)
	}

	return &mongoIterator{Iterator: iterator, marshal: json.Marshal}, nil
}

// Batch performs multiple Put and/or Delete operations in a single bulk write.
func (s *mongoStore) Batch(operations []storage.Operation) error {
	models := make([]mongo.WriteModel, len(operations))

	for i, op := range operations {
		if len(op.Value) == 0 {
			models[i] = mongo.NewDeleteOneModel().SetFilter(bson.M{mongoIDField: op.Key})

			continue
		}

		var doc map[string]interface{}

		decoder := json.NewDecoder(bytes.NewReader(op.Value))
		decoder.UseNumber()

		if err := decoder.Decode(&doc); err != nil {
			return fmt.Errorf("unmarshal document [%s-%s]: %w", s.namespace, op.Key, err)
		}

		doc[mongoIDField] = op.Key

		if op.PutOptions != nil && op.PutOptions.IsNewKey {
			models[i] = mongo.NewInsertOneModel().SetDocument(doc)
		} else {
			models[i] = mongo.NewReplaceOneModel().SetFilter(bson.M{mongoIDField: op.Key}).
				SetReplacement(doc).SetUpsert(true)
		}
	}

	if err := s.ds.BulkWrite(models); err != nil {
		return fmt.Errorf("bulk write [%s]: %w", s.namespace, err)
	}

	return nil
}

// GetTags is not supported since tags are stored as document fields.
func (s *mongoStore) GetTags(string) ([]storage.Tag, error) {
	panic("not implemented")
}

// Delete deletes the given key and its value.
func (s *mongoStore) Delete(key string) error {
	return s.store.Delete(key)
}

// Flush forces any queued up Put and/or Delete operations to execute.
func (s *mongoStore) Flush() error {
	return s.store.Flush()
}

// Close closes this store, freeing resources.
func (s *mongoStore) Close() error {
	return s.store.Close()
}

type mongoIterator struct {
	mongodb.Iterator
	marshal func(v interface{}) ([]byte, error)
}

func (it *mongoIterator) Value() ([]byte, error) {
	doc, err := it.ValueAsRawMap()
	if err != nil {
		return nil, err
	}

	delete(doc, mongoIDField)

	value, err := it.marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	return value, nil
}

func uniqueTags(tagGroups []TagGroup) []string {
	var tags []string

	for _, tagGroup := range tagGroups {
		for _, tag := range tagGroup {
			if !contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}

	return tags
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}

	return false
}
