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
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/golpc/log"
)

// Scheduler is told when a mailbox has messages and nobody is draining its
// queue. Implementations must eventually call HaveEvents on the mailbox,
// from any goroutine. Schedule must not block.
type Scheduler interface {
	Schedule(mailbox *Mailbox)
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(mailbox *Mailbox)

// Schedule implements Scheduler
func (f SchedulerFunc) Schedule(mailbox *Mailbox) {
	f(mailbox)
}

// goroutineScheduler drains every scheduled mailbox on its own goroutine.
type goroutineScheduler struct {
	group  errgroup.Group
	logger log.Logger
}

var _ Scheduler = (*goroutineScheduler)(nil)

func newGoroutineScheduler(logger log.Logger) *goroutineScheduler {
	return &goroutineScheduler{logger: logger}
}

func (s *goroutineScheduler) Schedule(mailbox *Mailbox) {
	s.group.Go(func() error {
		if err := mailbox.queue.process(); err != nil {
			s.logger.Errorf("mailbox=%s failed to process events: %v", mailbox.id, err)
			return err
		}
		return nil
	})
}

// Wait blocks until every started drain returned and reports the first failure.
func (s *goroutineScheduler) Wait() error {
	return s.group.Wait()
}
