/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package revocation provides the default revocation-status checker used by
// the submission processor. Status is resolved from the credential's
// credentialStatus entry over HTTP and cached.
package revocation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bluele/gcache"
	"github.com/cenkalti/backoff/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
	orberrors "github.com/trustbloc/vp-verifier/pkg/errors"
)

var logger = log.New("revocation-client")

const (
	defaultCacheSize       = 100
	defaultCacheExpiration = time.Minute
	defaultMaxRetries      = 3
	defaultRetryInterval   = 500 * time.Millisecond

	statusProperty   = "credentialStatus"
	statusIDProperty = "id"
)

// HTTPClient represents HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type gCache interface {
	Get(key interface{}) (interface{}, error)
	SetWithExpire(interface{}, interface{}, time.Duration) error
}

// Client checks the revocation status of credentials against their declared
// status endpoints.
type Client struct {
	http        HTTPClient
	cache       gCache
	cacheExpiry time.Duration
	cacheSize   int
	maxRetries  uint64
	retryDelay  time.Duration
}

// Option is a revocation client instance option.
type Option func(opts *Client)

// WithHTTPClient allows providing HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *Client) {
		o.http = client
	}
}

// WithCacheLifetime option defines the lifetime of a status entry in the cache.
func WithCacheLifetime(expiry time.Duration) Option {
	return func(o *Client) {
		o.cacheExpiry = expiry
	}
}

// WithCacheSize option defines the cache size.
func WithCacheSize(size int) Option {
	return func(o *Client) {
		o.cacheSize = size
	}
}

// WithRetry option defines the retry policy for failed status lookups.
func WithRetry(maxRetries uint64, delay time.Duration) Option {
	return func(o *Client) {
		o.maxRetries = maxRetries
		o.retryDelay = delay
	}
}

// New returns a new revocation status client.
func New(opts ...Option) *Client {
	client := &Client{
		cacheExpiry: defaultCacheExpiration,
		cacheSize:   defaultCacheSize,
		maxRetries:  defaultMaxRetries,
		retryDelay:  defaultRetryInterval,
		http: &http.Client{
			Timeout: time.Minute,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	client.cache = gcache.New(client.cacheSize).ARC().Build()

	return client
}

// IsRevoked resolves the revocation status of the given credential. A
// credential that declares no status entry is reported as not revoked. Status
// lookups are retried with backoff and the result is cached.
func (c *Client) IsRevoked(ctx context.Context, credential interface{}) (bool, error) {
	statusURL, ok := statusEndpoint(credential)
	if !ok {
		return false, nil
	}

	if status, err := c.cache.Get(statusURL); err == nil {
		return status.(bool), nil
	}

	var revoked bool

	err := backoff.Retry(func() error {
		var err error

		revoked, err = c.fetchStatus(ctx, statusURL)

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewConstantBackOff(c.retryDelay), c.maxRetries), ctx))
	if err != nil {
		return false, orberrors.NewTransient(fmt.Errorf("fetch revocation status: %w", err))
	}

	if err := c.cache.SetWithExpire(statusURL, revoked, c.cacheExpiry); err != nil {
		logger.Warn("Error caching revocation status", logfields.WithStatusEndpoint(statusURL),
			log.WithError(err))
	}

	return revoked, nil
}

func (c *Client) fetchStatus(ctx context.Context, statusURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}

	defer func() {
		if e := resp.Body.Close(); e != nil {
			logger.Warn("Error closing response body", log.WithError(e))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("status endpoint returned status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	status := &struct {
		Revoked bool `json:"revoked"`
	}{}

	if err := json.Unmarshal(body, status); err != nil {
		return false, fmt.Errorf("unmarshal status response: %w", err)
	}

	logger.Debug("Resolved revocation status", logfields.WithStatusEndpoint(statusURL))

	return status.Revoked, nil
}

// statusEndpoint returns the URL of the credential's status entry, or false
// if the credential declares none.
func statusEndpoint(credential interface{}) (string, bool) {
	doc, ok := credential.(map[string]interface{})
	if !ok {
		return "", false
	}

	status, ok := doc[statusProperty].(map[string]interface{})
	if !ok {
		return "", false
	}

	id, ok := status[statusIDProperty].(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
