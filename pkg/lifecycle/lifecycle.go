/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lifecycle

import (
	"sync/atomic"

	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/trustbloc/vp-verifier/internal/pkg/log"
)

var logger = log.New("lifecycle")

// State is the state of a service.
type State = uint32

// Service states.
const (
	StateNotStarted State = 0
	StateStarting   State = 1
	StateStarted    State = 2
	StateStopped    State = 3
)

// Lifecycle implements the lifecycle of a service, i.e. Start and Stop.
type Lifecycle struct {
	name  string
	state uint32
	start func()
	stop  func()
}

// Opt sets a lifecycle option.
type Opt func(l *Lifecycle)

// WithStart sets the start function which is invoked when Start() is called.
func WithStart(start func()) Opt {
	return func(l *Lifecycle) {
		l.start = start
	}
}

// WithStop sets the stop function which is invoked when Stop() is called.
func WithStop(stop func()) Opt {
	return func(l *Lifecycle) {
		l.stop = stop
	}
}

// New returns a new Lifecycle.
func New(name string, opts ...Opt) *Lifecycle {
	l := &Lifecycle{
		name:  name,
		start: func() {},
		stop:  func() {},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Start starts the service. This function has no effect if the service has already been started.
func (l *Lifecycle) Start() {
	if !atomic.CompareAndSwapUint32(&l.state, StateNotStarted, StateStarting) {
		logger.Debug("Service already started", logfields.WithServiceName(l.name))

		return
	}

	l.start()

	atomic.StoreUint32(&l.state, StateStarted)

	logger.Debug("Service started", logfields.WithServiceName(l.name))
}

// Stop stops the service. This function has no effect if the service has already been stopped.
func (l *Lifecycle) Stop() {
	if !atomic.CompareAndSwapUint32(&l.state, StateStarted, StateStopped) {
		logger.Debug("Service already stopped", logfields.WithServiceName(l.name))

		return
	}

	l.stop()

	logger.Debug("Service stopped", logfields.WithServiceName(l.name))
}

// State returns the state of the service.
func (l *Lifecycle) State() State {
	return atomic.LoadUint32(&l.state)
}
