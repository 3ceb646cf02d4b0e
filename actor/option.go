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
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/golpc/config"
	"github.com/tochemey/golpc/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a factory.
	Apply(factory *MailboxFactory)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*MailboxFactory)

// Apply applies the option to the factory
func (f OptionFunc) Apply(factory *MailboxFactory) {
	f(factory)
}

// WithConfig copies the settings of cfg into the factory. Options given
// after it override individual settings.
func WithConfig(cfg *config.Config) Option {
	return OptionFunc(func(factory *MailboxFactory) {
		if cfg == nil {
			return
		}
		factory.bufferCapacity = cfg.InitialBufferCapacity
		factory.metricsEnabled = cfg.MetricsEnabled
		factory.shutdownTimeout = cfg.ShutdownTimeout
		factory.shutdownMaxRetries = cfg.ShutdownMaxRetries
		if cfg.Logger != nil {
			factory.logger = cfg.Logger
		}
	})
}

// WithLogger sets the factory logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(factory *MailboxFactory) {
		factory.logger = logger
	})
}

// WithInitialBufferCapacity sets the capacity of the per-destination
// buffers of the mailboxes created afterwards.
func WithInitialBufferCapacity(capacity int) Option {
	return OptionFunc(func(factory *MailboxFactory) {
		factory.bufferCapacity = capacity
	})
}

// WithMetrics enables the dispatch metrics on the global MeterProvider.
func WithMetrics() Option {
	return OptionFunc(func(factory *MailboxFactory) {
		factory.metricsEnabled = true
	})
}

// WithMeterProvider enables the dispatch metrics on the given MeterProvider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(factory *MailboxFactory) {
		factory.metricsEnabled = true
		factory.meterProvider = provider
	})
}

// WithShutdownTimeout bounds how long Close waits for mailboxes to go idle.
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(factory *MailboxFactory) {
		factory.shutdownTimeout = timeout
	})
}

// WithShutdownMaxRetries bounds how many times Close checks for idleness.
func WithShutdownMaxRetries(retries int) Option {
	return OptionFunc(func(factory *MailboxFactory) {
		factory.shutdownMaxRetries = retries
	})
}

// WithScheduler replaces the default goroutine-per-drain scheduler.
func WithScheduler(scheduler Scheduler) Option {
	return OptionFunc(func(factory *MailboxFactory) {
		factory.scheduler = scheduler
	})
}
