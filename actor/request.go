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

package actor

import (
	gerrors "github.com/tochemey/golpc/errors"
)

// Request is the payload of a call. It knows which actors can process it
// and how to apply itself to one of them.
type Request interface {
	// ProcessRequest applies the request to target. The outcome is handed to
	// rp, either before returning or later from another message. A returned
	// error is a fault of the target.
	ProcessRequest(target Actor, rp ResponseProcessor) error
	// IsTargetType reports whether the given actor can process the request.
	IsTargetType(target Actor) bool
}

// ResponseProcessor receives the outcome of a call. A value implementing
// error is a fault.
type ResponseProcessor interface {
	ProcessResponse(response any) error
}

// ResponseFunc adapts a function to ResponseProcessor.
type ResponseFunc func(response any) error

// ProcessResponse implements ResponseProcessor
func (f ResponseFunc) ProcessResponse(response any) error {
	return f(response)
}

// NoResponse discards every response. Events are processed with it.
var NoResponse ResponseProcessor = noResponse{}

type noResponse struct{}

func (noResponse) ProcessResponse(any) error { return nil }

// ExceptionHandler intercepts faults raised by the calls an actor makes.
// Returning nil absorbs the fault; returning an error propagates it.
type ExceptionHandler func(err error) error

// TargetActor returns the first actor, starting with a and walking up its
// parents, that can process the request, or nil when none can.
func TargetActor(request Request, a Actor) Actor {
	for candidate := a; candidate != nil; candidate = candidate.Parent() {
		if request.IsTargetType(candidate) {
			return candidate
		}
	}
	return nil
}

// Ancestor returns the nearest parent of a that implements T.
func Ancestor[T any](a Actor) (T, bool) {
	for parent := a.Parent(); parent != nil; parent = parent.Parent() {
		if match, ok := parent.(T); ok {
			return match, true
		}
	}
	var zero T
	return zero, false
}

// AncestorOfType returns the nearest parent of a tagged with actorType.
func AncestorOfType(a Actor, actorType string) Actor {
	for parent := a.Parent(); parent != nil; parent = parent.Parent() {
		if parent.ActorType() == actorType {
			return parent
		}
	}
	return nil
}

func processResponse(rp ResponseProcessor, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gerrors.Recovered(r)
		}
	}()
	return rp.ProcessResponse(value)
}

func callExceptionHandler(handler ExceptionHandler, fault error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gerrors.Recovered(r)
		}
	}()
	return handler(fault)
}

// callerFault strips the carrier added around a continuation's fault.
func callerFault(err error) error {
	if transparent, ok := gerrors.AsTransparent(err); ok {
		return transparent.Unwrap()
	}
	return err
}
