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

// Package actor implements light-weight actors whose calls run inline when
// caller and callee share a processing domain and are queued otherwise.
// Actors attached to the same Mailbox never run concurrently.
package actor

import (
	gerrors "github.com/tochemey/golpc/errors"
)

// RequestSource is the party a call originates from. Actors are request
// sources; so are the mailbox-less callers behind Ask and Tell.
type RequestSource interface {
	// Mailbox returns the mailbox of the source or nil for callers outside
	// any actor.
	Mailbox() *Mailbox
	// responseFrom receives the response to a call made by the source.
	responseFrom(responder *Mailbox, r *response)
}

// Actor is the unit requests are addressed to. Concrete actors embed
// LPCActor and are wired with Initialize.
type Actor interface {
	RequestSource
	// AcceptRequest is the entry point of every call. A nil rp turns the
	// call into an event.
	AcceptRequest(source RequestSource, request Request, rp ResponseProcessor) error
	// AcceptEvent is the entry point of fire-and-forget calls.
	AcceptEvent(source RequestSource, request Request) error
	// Parent returns the actor this one was attached to, if any.
	Parent() Actor
	// ActorType returns the type tag given at initialization.
	ActorType() string
	base() *LPCActor
}

// LPCActor implements the call machinery shared by all actors.
//
//	type Counter struct {
//		actor.LPCActor
//		count int
//	}
//
//	counter := new(Counter)
//	err := actor.Initialize(counter, mailbox)
type LPCActor struct {
	self      Actor
	mailbox   *Mailbox
	parent    Actor
	actorType string
}

var _ Actor = (*LPCActor)(nil)

// InitOption configures an actor at initialization.
type InitOption func(*LPCActor)

// WithParent attaches the actor to a parent. Requests the actor cannot
// process are looked up along the parent chain.
func WithParent(parent Actor) InitOption {
	return func(a *LPCActor) {
		a.parent = parent
	}
}

// WithActorType tags the actor with a type name.
func WithActorType(actorType string) InitOption {
	return func(a *LPCActor) {
		a.actorType = actorType
	}
}

// Initialize binds self to its mailbox. It fails when mailbox is nil or
// when self was already initialized.
func Initialize(self Actor, mailbox *Mailbox, opts ...InitOption) error {
	if mailbox == nil {
		return gerrors.NewConfigurationError(gerrors.ErrMailboxRequired)
	}

	a := self.base()
	if a.mailbox != nil {
		return gerrors.NewConfigurationError(gerrors.ErrAlreadyInitialized)
	}

	for _, opt := range opts {
		opt(a)
	}

	a.self = self
	a.mailbox = mailbox
	return nil
}

func (a *LPCActor) base() *LPCActor {
	return a
}

// Self returns the concrete actor that embeds a.
func (a *LPCActor) Self() Actor {
	return a.self
}

// Mailbox returns the actor's mailbox
func (a *LPCActor) Mailbox() *Mailbox {
	return a.mailbox
}

// Parent returns the actor's parent
func (a *LPCActor) Parent() Actor {
	return a.parent
}

// ActorType returns the actor's type tag
func (a *LPCActor) ActorType() string {
	return a.actorType
}

// ExceptionHandler returns the exception handler active in the actor's mailbox.
func (a *LPCActor) ExceptionHandler() ExceptionHandler {
	return a.mailbox.ExceptionHandler()
}

// SetExceptionHandler installs the handler for the faults of the calls made
// while processing the current request.
func (a *LPCActor) SetExceptionHandler(handler ExceptionHandler) {
	a.mailbox.SetExceptionHandler(handler)
}

// SetInitialBufferCapacity sets the outgoing buffer capacity of the mailbox.
func (a *LPCActor) SetInitialBufferCapacity(capacity int) {
	a.mailbox.SetInitialBufferCapacity(capacity)
}

// HaveEvents signals the actor's mailbox that messages are ready.
func (a *LPCActor) HaveEvents() {
	a.mailbox.HaveEvents()
}

// Send calls target, or the first of its ancestors able to process request.
// rp receives the response, synchronously when the target shares or can
// borrow the caller's domain, later otherwise.
func (a *LPCActor) Send(target Actor, request Request, rp ResponseProcessor) error {
	if a.mailbox == nil {
		return gerrors.NewConfigurationError(gerrors.ErrNotInitialized)
	}

	resolved := TargetActor(request, target)
	if resolved == nil {
		return gerrors.NewErrNoTargetActor(request)
	}
	return resolved.AcceptRequest(a, request, rp)
}

// SendEvent calls target without expecting a response. Faults raised by
// the target never reach the sender.
func (a *LPCActor) SendEvent(target Actor, request Request) error {
	if a.mailbox == nil {
		return gerrors.NewConfigurationError(gerrors.ErrNotInitialized)
	}

	resolved := TargetActor(request, target)
	if resolved == nil {
		return gerrors.NewErrNoTargetActor(request)
	}
	return resolved.AcceptEvent(a, request)
}

func (a *LPCActor) responseFrom(responder *Mailbox, r *response) {
	responder.send(a.mailbox, r)
}

// apply runs the request handler of the actor. Panics become faults.
func (a *LPCActor) apply(request Request, rp ResponseProcessor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gerrors.Recovered(r)
		}
	}()

	a.mailbox.exceptionHandler = nil
	return request.ProcessRequest(a.self, rp)
}
