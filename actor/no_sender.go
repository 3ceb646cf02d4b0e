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
	"context"
	"errors"
	"sync"

	gerrors "github.com/tochemey/golpc/errors"
)

// noSender is the source of events sent from outside any actor. Responses
// addressed to it are dropped.
type noSender struct{}

var _ RequestSource = noSender{}

func (noSender) Mailbox() *Mailbox                { return nil }
func (noSender) responseFrom(*Mailbox, *response) {}

// future is the source of a request sent from outside any actor. It is
// completed by the first response.
type future struct {
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

var (
	_ RequestSource     = (*future)(nil)
	_ ResponseProcessor = (*future)(nil)
)

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func (f *future) Mailbox() *Mailbox {
	return nil
}

func (f *future) responseFrom(_ *Mailbox, r *response) {
	f.complete(r.value)
}

func (f *future) ProcessResponse(value any) error {
	f.complete(value)
	return nil
}

func (f *future) complete(value any) {
	f.once.Do(func() {
		if err, ok := value.(error); ok {
			f.err = err
		} else {
			f.value = value
		}
		close(f.done)
	})
}

func (f *future) await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, gerrors.ErrRequestTimeout
		}
		return nil, ctx.Err()
	}
}

// Ask sends request to target, or to the first of its ancestors able to
// process it, from outside any actor and waits for the response. A fault
// response is returned as the error. The call itself is not cancelled when
// ctx ends; only the wait is.
func Ask(ctx context.Context, target Actor, request Request) (any, error) {
	resolved := TargetActor(request, target)
	if resolved == nil {
		return nil, gerrors.NewErrNoTargetActor(request)
	}

	f := newFuture()
	if err := resolved.AcceptRequest(f, request, f); err != nil {
		return nil, err
	}
	return f.await(ctx)
}

// Tell sends request to target, or to the first of its ancestors able to
// process it, from outside any actor without waiting for anything.
func Tell(target Actor, request Request) error {
	resolved := TargetActor(request, target)
	if resolved == nil {
		return gerrors.NewErrNoTargetActor(request)
	}
	return resolved.AcceptEvent(noSender{}, request)
}
