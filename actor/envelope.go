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
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// message is what event queues carry: either a request *Envelope or a
// *response travelling back to the requester.
type message interface {
	isMessage()
}

// response carries the outcome of an envelope back to its source mailbox.
type response struct {
	request *Envelope
	value   any
}

func (*response) isMessage() {}

// Envelope wraps one call from a source to a target actor. It is delivered
// at most once: the first response deactivates it and later ones are dropped.
type Envelope struct {
	id            string
	source        RequestSource
	sourceMailbox *Mailbox
	target        Actor
	request       Request
	rp            ResponseProcessor
	event         bool
	active        *atomic.Bool

	// context of the source mailbox when the envelope was created
	sourceRequest          *Envelope
	sourceExceptionHandler ExceptionHandler

	outcome *atomic.Pointer[eventOutcome]
}

type eventOutcome struct {
	value any
}

func (*Envelope) isMessage() {}

func newEnvelope(source RequestSource, target Actor, request Request, rp ResponseProcessor, event bool) *Envelope {
	envelope := &Envelope{
		id:            uuid.NewString(),
		source:        source,
		sourceMailbox: source.Mailbox(),
		target:        target,
		request:       request,
		rp:            rp,
		event:         event,
		active:        atomic.NewBool(true),
		outcome:       atomic.NewPointer[eventOutcome](nil),
	}

	if envelope.sourceMailbox != nil {
		envelope.sourceRequest = envelope.sourceMailbox.currentRequest
		envelope.sourceExceptionHandler = envelope.sourceMailbox.exceptionHandler
	}
	return envelope
}

// ID returns the envelope identifier
func (e *Envelope) ID() string {
	return e.id
}

// Source returns the party that issued the call
func (e *Envelope) Source() RequestSource {
	return e.source
}

// Target returns the actor the call is addressed to
func (e *Envelope) Target() Actor {
	return e.target
}

// Request returns the request payload
func (e *Envelope) Request() Request {
	return e.request
}

// IsEvent reports whether the call expects no response.
func (e *Envelope) IsEvent() bool {
	return e.event
}

// IsActive reports whether the envelope still accepts a response.
func (e *Envelope) IsActive() bool {
	return e.active.Load()
}

// Outcome returns the recorded outcome of an event envelope: nil on success
// or the fault it ended with. The boolean is false until the event completes.
func (e *Envelope) Outcome() (any, bool) {
	outcome := e.outcome.Load()
	if outcome == nil {
		return nil, false
	}
	return outcome.value, true
}

// deactivate reports whether this call won the right to deliver a response.
func (e *Envelope) deactivate() bool {
	return e.active.CompareAndSwap(true, false)
}

// restoreSourceMailbox puts back the current request and exception handler
// the source mailbox had when the envelope was created.
func (e *Envelope) restoreSourceMailbox() {
	if e.sourceMailbox == nil {
		return
	}
	e.sourceMailbox.currentRequest = e.sourceRequest
	e.sourceMailbox.exceptionHandler = e.sourceExceptionHandler
}

// handleFault gives the source's exception handler a chance to absorb a
// fault raised by the target. Without a handler the fault is returned as is.
func (e *Envelope) handleFault(err error) error {
	if e.sourceExceptionHandler == nil {
		return err
	}
	return callExceptionHandler(e.sourceExceptionHandler, err)
}
