// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrMailboxRequired is returned when an actor is initialized without a mailbox.
	ErrMailboxRequired = errors.New("mailbox may not be nil")
	// ErrAlreadyInitialized is returned when an actor is initialized a second time.
	ErrAlreadyInitialized = errors.New("actor is already initialized")
	// ErrNotInitialized is returned when an actor without a mailbox is asked to process a call.
	ErrNotInitialized = errors.New("actor is not initialized")
	// ErrSourceRequired is returned when a call is made without a request source.
	ErrSourceRequired = errors.New("request source is required")
	// ErrNoTargetActor is returned when neither an actor nor any of its ancestors can process a request.
	ErrNoTargetActor = errors.New("no target actor for request")
	// ErrUnsupportedRequest is returned when a request is applied to an actor of the wrong kind.
	ErrUnsupportedRequest = errors.New("unsupported request")
	// ErrFactoryClosed is returned when a closed mailbox factory is asked for a new mailbox.
	ErrFactoryClosed = errors.New("mailbox factory is closed")
	// ErrRequestTimeout is returned when a top-level caller stops waiting for a response.
	ErrRequestTimeout = errors.New("request timed out")
	// ErrQueueDisposed is returned when messages are put into a disposed event queue.
	ErrQueueDisposed = errors.New("event queue is disposed")
	// ErrInvalidBufferCapacity is returned when the initial buffer capacity is not positive.
	ErrInvalidBufferCapacity = errors.New("initial buffer capacity must be greater than zero")
	// ErrInvalidShutdownTimeout is returned when the shutdown timeout is not positive.
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be greater than zero")
	// ErrInvalidLogLevel is returned when the configured log level cannot be parsed.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrNameAlreadySet is returned when an actor name is assigned twice.
	ErrNameAlreadySet = errors.New("actor name is already set")
	// ErrNameRequired is returned when an empty actor name is assigned or looked up.
	ErrNameRequired = errors.New("actor name is required")
	// ErrNameRegistered is returned when a directory already holds an actor under a name.
	ErrNameRegistered = errors.New("actor name is already registered")
)

// NewErrNoTargetActor reports the request that found no actor to process it.
func NewErrNoTargetActor(request any) error {
	return fmt.Errorf("%w: %T", ErrNoTargetActor, request)
}

// NewErrUnsupportedRequest reports a request applied to an actor that cannot process it.
func NewErrUnsupportedRequest(request, target any) error {
	return fmt.Errorf("%w: %T cannot be processed by %T", ErrUnsupportedRequest, request, target)
}

// NewErrNameAlreadySet reports the name an actor already carries.
func NewErrNameAlreadySet(name string) error {
	return fmt.Errorf("%w: %s", ErrNameAlreadySet, name)
}

// NewErrNameRegistered reports the name a directory already holds.
func NewErrNameRegistered(name string) error {
	return fmt.Errorf("%w: %s", ErrNameRegistered, name)
}

// ConfigurationError marks a wiring mistake such as a missing mailbox or a
// double initialization. These are fatal and must never be retried.
type ConfigurationError struct {
	err error
}

// enforce compilation error
var _ error = (*ConfigurationError)(nil)

// NewConfigurationError creates an instance of ConfigurationError
func NewConfigurationError(err error) *ConfigurationError {
	return &ConfigurationError{err: err}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.err
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Recovered turns a value returned by recover() into a PanicError enriched
// with the location of the panic. An existing PanicError is returned as is.
func Recovered(r any) *PanicError {
	pc, fn, line, _ := runtime.Caller(3)
	location := fmt.Sprintf("%s[%s:%d]", runtime.FuncForPC(pc).Name(), fn, line)

	if err, ok := r.(error); ok {
		var pe *PanicError
		if errors.As(err, &pe) {
			return pe
		}
		return NewPanicError(fmt.Errorf("%w at %s", err, location))
	}
	return NewPanicError(fmt.Errorf("%#v at %s", r, location))
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// TransparentError carries a fault raised by a caller's continuation back
// through the call machinery of the callee. The callee never classifies it as
// its own fault; it is unwrapped at the call site that created it.
type TransparentError struct {
	err error
}

// enforce compilation error
var _ error = (*TransparentError)(nil)

// NewTransparentError creates an instance of TransparentError
func NewTransparentError(err error) *TransparentError {
	return &TransparentError{err: err}
}

func (e *TransparentError) Error() string {
	return e.err.Error()
}

// Unwrap returns the caller's fault.
func (e *TransparentError) Unwrap() error {
	return e.err
}

// AsTransparent returns the outermost TransparentError in err's chain.
func AsTransparent(err error) (*TransparentError, bool) {
	var target *TransparentError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
