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
	"github.com/Workiva/go-datastructures/queue"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/golpc/errors"
)

// Controller identifies an execution domain. Every event queue owns one and
// installs it while draining itself; another domain installs its own to
// process the queue inline. Two queues whose current controllers are the
// same pointer belong to the same domain.
type Controller struct {
	id string
}

func newController() *Controller {
	return &Controller{id: uuid.NewString()}
}

// ID returns the controller identifier.
func (c *Controller) ID() string {
	return c.id
}

// String implements fmt.Stringer.
func (c *Controller) String() string {
	return c.id
}

// EventQueue is the FIFO of message batches of a mailbox together with the
// identity of whoever currently has the exclusive right to drain it.
type EventQueue struct {
	self    *Controller
	control *atomic.Pointer[Controller]
	pending *queue.Queue
	// dispatch processes one batch in the owning mailbox
	dispatch func(batch []message)
	// notify hands the queue to the scheduler
	notify func()
}

func newEventQueue(sizeHint int, dispatch func([]message), notify func()) *EventQueue {
	return &EventQueue{
		self:     newController(),
		control:  atomic.NewPointer[Controller](nil),
		pending:  queue.New(int64(sizeHint)),
		dispatch: dispatch,
		notify:   notify,
	}
}

// Controller returns the controller currently draining the queue or nil
// when the queue is idle.
func (q *EventQueue) Controller() *Controller {
	return q.control.Load()
}

// AcquireControl installs the given controller when the queue is idle and
// reports whether it did. It never blocks.
func (q *EventQueue) AcquireControl(controller *Controller) bool {
	if controller == nil {
		return false
	}
	return q.control.CompareAndSwap(nil, controller)
}

// RelinquishControl makes the queue idle again. Events that arrived while
// the queue was controlled are handed to the scheduler.
func (q *EventQueue) RelinquishControl() {
	q.control.Store(nil)
	if !q.IsEmpty() {
		q.notify()
	}
}

// DispatchEvents drains the queue in FIFO order. The caller must hold control.
func (q *EventQueue) DispatchEvents() {
	for {
		items, ok := q.poll()
		if !ok {
			return
		}
		q.dispatch(items)
	}
}

// IsEmpty reports whether no batch is pending.
func (q *EventQueue) IsEmpty() bool {
	return q.pending.Empty()
}

// Len returns the number of pending batches.
func (q *EventQueue) Len() int {
	return int(q.pending.Len())
}

// put appends one batch and notifies the scheduler when nobody is draining.
func (q *EventQueue) put(batch []message) error {
	if err := q.pending.Put(batch); err != nil {
		return gerrors.ErrQueueDisposed
	}

	if q.control.Load() == nil {
		q.notify()
	}
	return nil
}

func (q *EventQueue) poll() ([]message, bool) {
	if q.pending.Empty() {
		return nil, false
	}

	items, err := q.pending.Get(1)
	if err != nil || len(items) == 0 {
		return nil, false
	}
	return items[0].([]message), true
}

// process drains the queue under its own controller until it is found empty
// after going idle. It returns immediately when another controller holds it.
func (q *EventQueue) process() error {
	for {
		if !q.control.CompareAndSwap(nil, q.self) {
			return nil
		}

		err := q.drain()
		q.control.Store(nil)
		if err != nil {
			if !q.IsEmpty() {
				q.notify()
			}
			return err
		}

		if q.IsEmpty() {
			return nil
		}
	}
}

func (q *EventQueue) drain() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gerrors.Recovered(r)
		}
	}()
	q.DispatchEvents()
	return nil
}

// idle reports whether the queue has neither a controller nor pending batches.
func (q *EventQueue) idle() bool {
	return q.control.Load() == nil && q.IsEmpty()
}

func (q *EventQueue) dispose() {
	q.pending.Dispose()
}
