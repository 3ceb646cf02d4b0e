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
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/golpc/errors"
)

// route is how a call reaches its target.
type route int

const (
	// source and target share a mailbox
	sameMailbox route = iota
	// the target's queue is controlled by the source's controller
	sameDomain
	// the target's idle queue was borrowed by the source's controller
	acquired
	// the source has no mailbox
	noSource
	// the source mailbox is not being processed by anyone
	idleSource
	// the target's queue is controlled by another domain
	contended
)

var routeNames = [...]string{
	sameMailbox: "same_mailbox",
	sameDomain:  "same_domain",
	acquired:    "acquired",
	noSource:    "no_source",
	idleSource:  "idle_source",
	contended:   "contended",
}

func (r route) String() string {
	return routeNames[r]
}

func (r route) inline() bool {
	return r <= acquired
}

// AcceptRequest routes a call from source. Calls within one domain, or into
// an idle domain that can be borrowed, run inline and rp sees the response
// before AcceptRequest returns. Other calls are queued and rp runs later in
// the source's mailbox.
func (a *LPCActor) AcceptRequest(source RequestSource, request Request, rp ResponseProcessor) error {
	if err := a.checkSource(source); err != nil {
		return err
	}

	if rp == nil {
		return a.AcceptEvent(source, request)
	}

	path := a.route(source)
	a.mailbox.factory.recordRoute(path)
	if !path.inline() {
		return a.asyncSend(source, newEnvelope(source, a.self, request, rp, false), path)
	}

	if path == acquired {
		defer a.releaseControl()
	}
	return a.syncSend(source, request, rp)
}

// AcceptEvent routes a fire-and-forget call from source the same way as
// AcceptRequest. Faults raised by the target are recorded on the envelope
// and published, never returned.
func (a *LPCActor) AcceptEvent(source RequestSource, request Request) error {
	if err := a.checkSource(source); err != nil {
		return err
	}

	path := a.route(source)
	a.mailbox.factory.recordRoute(path)
	if !path.inline() {
		return a.asyncSend(source, newEnvelope(source, a.self, request, NoResponse, true), path)
	}

	if path == acquired {
		defer a.releaseControl()
	}
	a.syncSendEvent(source, request)
	return nil
}

func (a *LPCActor) checkSource(source RequestSource) error {
	if a.mailbox == nil {
		return gerrors.NewConfigurationError(gerrors.ErrNotInitialized)
	}

	if source == nil {
		return gerrors.NewConfigurationError(gerrors.ErrSourceRequired)
	}

	// only Ask and Tell callers may come without a mailbox
	if origin, ok := source.(Actor); ok && origin.base().mailbox == nil {
		return gerrors.NewConfigurationError(gerrors.ErrNotInitialized)
	}
	return nil
}

func (a *LPCActor) route(source RequestSource) route {
	origin := source.Mailbox()
	switch {
	case origin == a.mailbox:
		return sameMailbox
	case origin == nil:
		return noSource
	}

	controller := origin.queue.Controller()
	if controller == nil {
		return idleSource
	}

	target := a.mailbox.queue
	if target.Controller() == controller {
		return sameDomain
	}

	ok := target.AcquireControl(controller)
	a.mailbox.factory.recordAcquisition(ok)
	if !ok {
		return contended
	}
	return acquired
}

// releaseControl hands a borrowed queue back after processing what arrived
// while it was borrowed.
func (a *LPCActor) releaseControl() {
	defer a.mailbox.queue.RelinquishControl()
	a.mailbox.DispatchEvents()
	a.mailbox.SendPendingMessages()
}

// asyncSend queues envelope for the target. Sources whose mailbox is being
// processed buffer it in their outbox; others put it straight into the queue.
func (a *LPCActor) asyncSend(source RequestSource, envelope *Envelope, path route) error {
	if path == contended {
		a.mailbox.logger.Debugf("mailbox=%s is controlled elsewhere, queueing request=%s", a.mailbox.id, envelope.id)
		source.Mailbox().send(a.mailbox, envelope)
		return nil
	}
	return a.mailbox.queue.put([]message{envelope})
}

// syncSend processes the request inline. The source mailbox gets its
// context back on every exit path.
func (a *LPCActor) syncSend(source RequestSource, request Request, rp ResponseProcessor) error {
	envelope := newEnvelope(source, a.self, request, rp, false)
	responder := &syncResponder{
		mailbox:  a.mailbox,
		envelope: envelope,
		rp:       rp,
		sync:     atomic.NewBool(false),
		async:    atomic.NewBool(false),
	}

	a.mailbox.currentRequest = envelope
	err := a.apply(request, responder)
	if !responder.sync.Load() {
		responder.async.Store(true)
	}
	envelope.restoreSourceMailbox()

	if err == nil {
		return nil
	}

	if transparent, ok := gerrors.AsTransparent(err); ok {
		return transparent.Unwrap()
	}
	return envelope.handleFault(err)
}

func (a *LPCActor) syncSendEvent(source RequestSource, request Request) {
	envelope := newEnvelope(source, a.self, request, NoResponse, true)
	a.mailbox.currentRequest = envelope
	err := a.apply(request, NoResponse)
	a.mailbox.Response(envelope, callerFault(err))
	envelope.restoreSourceMailbox()
}

// syncResponder is the response processor handed to a target processing a
// call inline. Responses given before the target returns run the caller's
// continuation immediately; later ones travel back through the queues.
type syncResponder struct {
	mailbox  *Mailbox
	envelope *Envelope
	rp       ResponseProcessor
	sync     *atomic.Bool
	async    *atomic.Bool
}

func (x *syncResponder) ProcessResponse(value any) error {
	current, handler := x.mailbox.currentRequest, x.mailbox.exceptionHandler
	defer func() {
		x.mailbox.currentRequest = current
		x.mailbox.exceptionHandler = handler
	}()

	if x.async.Load() {
		x.mailbox.Response(x.envelope, value)
		return nil
	}

	x.sync.Store(true)
	if !x.envelope.deactivate() {
		return nil
	}

	x.envelope.restoreSourceMailbox()
	if fault, ok := value.(error); ok {
		return fault
	}

	if err := processResponse(x.rp, value); err != nil {
		return gerrors.NewTransparentError(err)
	}
	return nil
}
