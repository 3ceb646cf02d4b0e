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
	"fmt"
	"time"

	"github.com/flowchartsman/retry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/golpc/config"
	gerrors "github.com/tochemey/golpc/errors"
	"github.com/tochemey/golpc/internal/eventstream"
	imetric "github.com/tochemey/golpc/internal/metric"
	"github.com/tochemey/golpc/log"
)

// TopicEventFaulted is the topic *EventFaulted notifications are published on.
const TopicEventFaulted = "golpc.events.faulted"

// EventFaulted is published when a fire-and-forget call ends with a fault.
type EventFaulted struct {
	envelope *Envelope
	err      error
}

// Envelope returns the envelope of the faulted event
func (e *EventFaulted) Envelope() *Envelope {
	return e.envelope
}

// Err returns the fault
func (e *EventFaulted) Err() error {
	return e.err
}

// MailboxFactory creates mailboxes and owns what they share: the scheduler,
// the logger, the event stream and the dispatch metrics.
type MailboxFactory struct {
	logger             log.Logger
	bufferCapacity     int
	scheduler          Scheduler
	shutdownTimeout    time.Duration
	shutdownMaxRetries int
	metricsEnabled     bool
	meterProvider      metric.MeterProvider

	registry       *registry
	eventsStream   eventstream.Stream
	dispatchMetric *imetric.DispatchMetric
	closed         *atomic.Bool
}

// NewMailboxFactory creates an instance of MailboxFactory
func NewMailboxFactory(opts ...Option) (*MailboxFactory, error) {
	factory := &MailboxFactory{
		logger:             log.DefaultLogger,
		bufferCapacity:     config.DefaultInitialBufferCapacity,
		shutdownTimeout:    config.DefaultShutdownTimeout,
		shutdownMaxRetries: config.DefaultShutdownMaxRetries,
		registry:           newRegistry(),
		eventsStream:       eventstream.New(),
		closed:             atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt.Apply(factory)
	}

	if factory.logger == nil {
		factory.logger = log.DefaultLogger
	}

	if factory.bufferCapacity <= 0 {
		return nil, gerrors.ErrInvalidBufferCapacity
	}

	if factory.shutdownTimeout <= 0 {
		return nil, gerrors.ErrInvalidShutdownTimeout
	}

	if factory.shutdownMaxRetries <= 0 {
		factory.shutdownMaxRetries = config.DefaultShutdownMaxRetries
	}

	if factory.scheduler == nil {
		factory.scheduler = newGoroutineScheduler(factory.logger)
	}

	if factory.metricsEnabled {
		var providerOpts []imetric.ProviderOption
		if factory.meterProvider != nil {
			providerOpts = append(providerOpts, imetric.WithMeterProvider(factory.meterProvider))
		}

		dispatchMetric, err := imetric.NewDispatchMetric(imetric.NewProvider(providerOpts...).Meter())
		if err != nil {
			return nil, fmt.Errorf("failed to create dispatch metrics: %w", err)
		}
		factory.dispatchMetric = dispatchMetric
	}

	return factory, nil
}

// CreateMailbox creates a mailbox with its own event queue and controller.
func (f *MailboxFactory) CreateMailbox() (*Mailbox, error) {
	if f.closed.Load() {
		return nil, gerrors.ErrFactoryClosed
	}

	mailbox := newMailbox(f)
	f.registry.add(mailbox)
	f.logger.Debugf("mailbox=%s created", mailbox.id)
	return mailbox, nil
}

// Mailbox returns the mailbox with the given identifier.
func (f *MailboxFactory) Mailbox(id string) (*Mailbox, bool) {
	return f.registry.get(id)
}

// Mailboxes returns the number of mailboxes created and not yet released by Close.
func (f *MailboxFactory) Mailboxes() int {
	return f.registry.len()
}

// Logger returns the factory logger
func (f *MailboxFactory) Logger() log.Logger {
	return f.logger
}

// Subscribe creates a subscriber to the given topics of the factory's event stream.
func (f *MailboxFactory) Subscribe(topics ...string) eventstream.Subscriber {
	subscriber := f.eventsStream.AddSubscriber()
	for _, topic := range topics {
		f.eventsStream.Subscribe(subscriber, topic)
	}
	return subscriber
}

// Unsubscribe removes the subscriber from the event stream.
func (f *MailboxFactory) Unsubscribe(subscriber eventstream.Subscriber) {
	f.eventsStream.RemoveSubscriber(subscriber)
}

// Close stops accepting new mailboxes, waits for the existing ones to go
// idle, then disposes of their queues. Calling Close again is a no-op.
func (f *MailboxFactory) Close(ctx context.Context) error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.logger.Infof("closing mailbox factory with %d mailboxes", f.registry.len())

	ctx, cancel := context.WithTimeout(ctx, f.shutdownTimeout)
	defer cancel()

	delay := f.shutdownTimeout / time.Duration(f.shutdownMaxRetries)
	retrier := retry.NewRetrier(f.shutdownMaxRetries, time.Millisecond, delay)

	var err error
	if idleErr := retrier.RunContext(ctx, func(context.Context) error {
		if busy := f.registry.busy(); busy > 0 {
			return fmt.Errorf("%d mailboxes still busy", busy)
		}
		return nil
	}); idleErr != nil {
		err = multierr.Append(err, fmt.Errorf("mailboxes did not go idle: %w", idleErr))
	}

	if waiter, ok := f.scheduler.(interface{ Wait() error }); ok {
		err = multierr.Append(err, waiter.Wait())
	}

	f.registry.forEach(func(mailbox *Mailbox) {
		mailbox.queue.dispose()
	})
	f.registry.reset()
	f.eventsStream.Close()

	if err != nil {
		f.logger.Errorf("mailbox factory closed with errors: %v", err)
		return err
	}

	f.logger.Info("mailbox factory closed")
	return nil
}

func (f *MailboxFactory) eventFaulted(envelope *Envelope, err error) {
	f.logger.Debugf("event=%s %T faulted: %v", envelope.id, envelope.request, err)
	if f.dispatchMetric != nil {
		f.dispatchMetric.RecordEventFault(context.Background())
	}
	f.eventsStream.Publish(TopicEventFaulted, &EventFaulted{envelope: envelope, err: err})
}

func (f *MailboxFactory) recordRoute(path route) {
	if f.dispatchMetric == nil {
		return
	}
	if path.inline() {
		f.dispatchMetric.RecordInline(context.Background(), path.String())
		return
	}
	f.dispatchMetric.RecordQueued(context.Background(), path.String())
}

func (f *MailboxFactory) recordAcquisition(acquired bool) {
	if f.dispatchMetric != nil {
		f.dispatchMetric.RecordAcquisition(context.Background(), acquired)
	}
}

func (f *MailboxFactory) recordProcessed(count int) {
	if f.dispatchMetric != nil {
		f.dispatchMetric.RecordProcessed(context.Background(), count)
	}
}
