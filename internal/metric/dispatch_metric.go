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

package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// PathKey is the attribute naming how a call was routed.
	PathKey = "path"
	// OutcomeKey is the attribute naming the result of a control acquisition.
	OutcomeKey = "outcome"
)

// DispatchMetric defines the dispatcher instrumentation
type DispatchMetric struct {
	// calls executed synchronously on the caller's goroutine
	inlineCalls metric.Int64Counter
	// calls turned into queued messages
	queuedCalls metric.Int64Counter
	// attempts to take control of an idle domain
	acquisitions metric.Int64Counter
	// messages processed out of event queues
	processedMessages metric.Int64Counter
	// fire-and-forget events that ended with a fault
	eventFaults metric.Int64Counter
}

// NewDispatchMetric creates an instance of DispatchMetric
func NewDispatchMetric(meter metric.Meter) (*DispatchMetric, error) {
	dispatchMetric := new(DispatchMetric)
	var err error
	if dispatchMetric.inlineCalls, err = meter.Int64Counter(
		"golpc_inline_calls",
		metric.WithDescription("Total number of calls executed inline"),
	); err != nil {
		return nil, fmt.Errorf("failed to create inlineCalls instrument, %w", err)
	}

	if dispatchMetric.queuedCalls, err = meter.Int64Counter(
		"golpc_queued_calls",
		metric.WithDescription("Total number of calls delivered through event queues"),
	); err != nil {
		return nil, fmt.Errorf("failed to create queuedCalls instrument, %w", err)
	}

	if dispatchMetric.acquisitions, err = meter.Int64Counter(
		"golpc_control_acquisitions",
		metric.WithDescription("Total number of attempts to take control of an idle event queue"),
	); err != nil {
		return nil, fmt.Errorf("failed to create acquisitions instrument, %w", err)
	}

	if dispatchMetric.processedMessages, err = meter.Int64Counter(
		"golpc_processed_messages",
		metric.WithDescription("Total number of queued messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedMessages instrument, %w", err)
	}

	if dispatchMetric.eventFaults, err = meter.Int64Counter(
		"golpc_event_faults",
		metric.WithDescription("Total number of fire-and-forget events that faulted"),
	); err != nil {
		return nil, fmt.Errorf("failed to create eventFaults instrument, %w", err)
	}

	return dispatchMetric, nil
}

// RecordInline counts a call executed inline through the given path.
func (x *DispatchMetric) RecordInline(ctx context.Context, path string) {
	x.inlineCalls.Add(ctx, 1, metric.WithAttributes(attribute.String(PathKey, path)))
}

// RecordQueued counts a call queued through the given path.
func (x *DispatchMetric) RecordQueued(ctx context.Context, path string) {
	x.queuedCalls.Add(ctx, 1, metric.WithAttributes(attribute.String(PathKey, path)))
}

// RecordAcquisition counts an attempt to take control of an idle queue.
func (x *DispatchMetric) RecordAcquisition(ctx context.Context, acquired bool) {
	outcome := "acquired"
	if !acquired {
		outcome = "contended"
	}
	x.acquisitions.Add(ctx, 1, metric.WithAttributes(attribute.String(OutcomeKey, outcome)))
}

// RecordProcessed counts messages drained from an event queue.
func (x *DispatchMetric) RecordProcessed(ctx context.Context, count int) {
	x.processedMessages.Add(ctx, int64(count))
}

// RecordEventFault counts a faulted fire-and-forget event.
func (x *DispatchMetric) RecordEventFault(ctx context.Context) {
	x.eventFaults.Add(ctx, 1)
}
