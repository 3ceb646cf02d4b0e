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

	"github.com/tochemey/golpc/log"
)

// Mailbox is the execution context shared by one or more actors. It owns an
// event queue, buffers outgoing messages per destination and tracks the
// request currently being processed together with its exception handler.
//
// Apart from ID, EventQueue and HaveEvents, a mailbox must only be used by
// whoever controls its event queue.
type Mailbox struct {
	id      string
	queue   *EventQueue
	factory *MailboxFactory
	logger  log.Logger

	currentRequest   *Envelope
	exceptionHandler ExceptionHandler

	bufferCapacity int
	destinations   []*Mailbox
	buffers        map[*Mailbox][]message
}

func newMailbox(factory *MailboxFactory) *Mailbox {
	mailbox := &Mailbox{
		id:             uuid.NewString(),
		factory:        factory,
		logger:         factory.logger,
		bufferCapacity: factory.bufferCapacity,
		buffers:        make(map[*Mailbox][]message),
	}

	mailbox.queue = newEventQueue(factory.bufferCapacity, mailbox.processBatch, func() {
		factory.scheduler.Schedule(mailbox)
	})
	return mailbox
}

// ID returns the mailbox identifier
func (m *Mailbox) ID() string {
	return m.id
}

// Logger returns the logger of the mailbox
func (m *Mailbox) Logger() log.Logger {
	return m.logger
}

// EventQueue returns the queue of the mailbox
func (m *Mailbox) EventQueue() *EventQueue {
	return m.queue
}

// CurrentRequest returns the envelope being processed
func (m *Mailbox) CurrentRequest() *Envelope {
	return m.currentRequest
}

// SetCurrentRequest sets the envelope being processed
func (m *Mailbox) SetCurrentRequest(envelope *Envelope) {
	m.currentRequest = envelope
}

// ExceptionHandler returns the active exception handler
func (m *Mailbox) ExceptionHandler() ExceptionHandler {
	return m.exceptionHandler
}

// SetExceptionHandler sets the active exception handler
func (m *Mailbox) SetExceptionHandler(handler ExceptionHandler) {
	m.exceptionHandler = handler
}

// SetInitialBufferCapacity sets the starting capacity of the batches buffered
// per destination. Non-positive values are ignored.
func (m *Mailbox) SetInitialBufferCapacity(capacity int) {
	if capacity > 0 {
		m.bufferCapacity = capacity
	}
}

// HaveEvents signals that messages are ready. The queue is drained on the
// calling goroutine unless someone already controls it, in which case the
// controller will pick the messages up.
func (m *Mailbox) HaveEvents() {
	if err := m.queue.process(); err != nil {
		m.logger.Errorf("mailbox=%s failed to process events: %v", m.id, err)
	}
}

// DispatchEvents drains the event queue. The caller must control it.
func (m *Mailbox) DispatchEvents() {
	m.queue.DispatchEvents()
}

// SendPendingMessages flushes the buffered messages, one batch per
// destination, in the order the destinations were first written to.
func (m *Mailbox) SendPendingMessages() {
	if len(m.destinations) == 0 {
		return
	}

	destinations, buffers := m.destinations, m.buffers
	m.destinations = nil
	m.buffers = make(map[*Mailbox][]message, len(buffers))

	for _, destination := range destinations {
		if err := destination.queue.put(buffers[destination]); err != nil {
			m.logger.Warnf("mailbox=%s dropped %d messages for mailbox=%s: %v",
				m.id, len(buffers[destination]), destination.id, err)
		}
	}
}

// Response delivers the outcome of envelope. Only the first response of an
// envelope is delivered; later ones are ignored.
func (m *Mailbox) Response(envelope *Envelope, value any) {
	if !envelope.deactivate() {
		return
	}

	if envelope.IsEvent() {
		envelope.outcome.Store(&eventOutcome{value: value})
		if fault, ok := value.(error); ok {
			m.factory.eventFaulted(envelope, fault)
		}
		return
	}

	envelope.source.responseFrom(m, &response{request: envelope, value: value})
}

// send buffers msg for destination until SendPendingMessages.
func (m *Mailbox) send(destination *Mailbox, msg message) {
	buffer, ok := m.buffers[destination]
	if !ok {
		buffer = make([]message, 0, m.bufferCapacity)
		m.destinations = append(m.destinations, destination)
	}
	m.buffers[destination] = append(buffer, msg)
}

// processBatch handles one batch then flushes whatever it produced.
func (m *Mailbox) processBatch(batch []message) {
	for _, msg := range batch {
		switch x := msg.(type) {
		case *Envelope:
			m.processRequestMessage(x)
		case *response:
			m.processResponseMessage(x)
		}
	}
	m.factory.recordProcessed(len(batch))
	m.SendPendingMessages()
}

func (m *Mailbox) processRequestMessage(envelope *Envelope) {
	m.currentRequest = envelope
	target := envelope.target.base()

	if envelope.IsEvent() {
		err := target.apply(envelope.request, NoResponse)
		m.Response(envelope, callerFault(err))
		return
	}

	err := target.apply(envelope.request, ResponseFunc(func(value any) error {
		m.Response(envelope, value)
		return nil
	}))
	if err != nil {
		m.processException(envelope, callerFault(err), false)
	}
}

// processResponseMessage runs in the requester's mailbox with the context
// the requester had when it made the call.
func (m *Mailbox) processResponseMessage(r *response) {
	envelope := r.request
	m.currentRequest = envelope.sourceRequest
	m.exceptionHandler = envelope.sourceExceptionHandler

	if fault, ok := r.value.(error); ok {
		m.processException(envelope.sourceRequest, fault, true)
		return
	}

	if err := processResponse(envelope.rp, r.value); err != nil {
		m.processException(envelope.sourceRequest, callerFault(err), false)
	}
}

// processException answers request with fault, after letting the active
// exception handler absorb it when handle is set.
func (m *Mailbox) processException(request *Envelope, fault error, handle bool) {
	if handle && m.exceptionHandler != nil {
		if fault = callExceptionHandler(m.exceptionHandler, fault); fault == nil {
			return
		}
	}

	switch {
	case request == nil:
		m.logger.Errorf("mailbox=%s has no request to answer with fault: %v", m.id, fault)
	case !request.IsActive():
		m.logger.Debugf("mailbox=%s request=%s already answered, dropping fault: %v", m.id, request.id, fault)
	default:
		m.Response(request, fault)
	}
}
