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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/goleak"

	imetric "github.com/tochemey/golpc/internal/metric"
	"github.com/tochemey/golpc/log"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var errBoom = errors.New("boom")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// probe is a scriptable actor: the requests sent to it carry their own handler.
type probe struct {
	LPCActor
	name string
}

// call is a request whose handling is given as a closure.
type call struct {
	handle func(self *probe, rp ResponseProcessor) error
}

var _ Request = (*call)(nil)

func (c *call) ProcessRequest(target Actor, rp ResponseProcessor) error {
	return c.handle(target.(*probe), rp)
}

func (c *call) IsTargetType(target Actor) bool {
	_, ok := target.(*probe)
	return ok
}

// reply answers with value.
func reply(value any) *call {
	return &call{handle: func(_ *probe, rp ResponseProcessor) error {
		return rp.ProcessResponse(value)
	}}
}

// raise fails with err without answering.
func raise(err error) *call {
	return &call{handle: func(*probe, ResponseProcessor) error {
		return err
	}}
}

// ledger is an actor of another kind, used to exercise parent lookups.
type ledger struct {
	LPCActor
	entries []int
}

type record struct {
	amount int
}

func (r *record) ProcessRequest(target Actor, rp ResponseProcessor) error {
	l := target.(*ledger)
	l.entries = append(l.entries, r.amount)
	return rp.ProcessResponse(len(l.entries))
}

func (r *record) IsTargetType(target Actor) bool {
	_, ok := target.(*ledger)
	return ok
}

type testFactory struct {
	*MailboxFactory
	reader *sdkmetric.ManualReader
}

func newTestFactory(t *testing.T, opts ...Option) *testFactory {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	opts = append([]Option{
		WithLogger(log.DiscardLogger),
		WithMeterProvider(meterProvider),
		WithShutdownTimeout(waitFor),
	}, opts...)

	factory, err := NewMailboxFactory(opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, factory.Close(context.Background()))
		require.NoError(t, meterProvider.Shutdown(context.Background()))
	})
	return &testFactory{MailboxFactory: factory, reader: reader}
}

func (f *testFactory) mailbox(t *testing.T) *Mailbox {
	t.Helper()
	mailbox, err := f.CreateMailbox()
	require.NoError(t, err)
	return mailbox
}

// counter returns the sum of the named counter for the given route, or for
// all routes when path is empty.
func (f *testFactory) counter(t *testing.T, name, key, value string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, point := range sum.DataPoints {
				if key == "" {
					total += point.Value
					continue
				}
				if v, ok := point.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
					total += point.Value
				}
			}
		}
	}
	return total
}

func (f *testFactory) inline(t *testing.T, path route) int64 {
	return f.counter(t, "golpc_inline_calls", imetric.PathKey, path.String())
}

func (f *testFactory) queued(t *testing.T, path route) int64 {
	return f.counter(t, "golpc_queued_calls", imetric.PathKey, path.String())
}

func newProbe(t *testing.T, mailbox *Mailbox, name string, opts ...InitOption) *probe {
	t.Helper()
	p := &probe{name: name}
	require.NoError(t, Initialize(p, mailbox, opts...))
	return p
}

func ask(t *testing.T, target Actor, request Request) (any, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	return Ask(ctx, target, request)
}

// hold takes control of mailbox on behalf of an unrelated domain until the
// returned release function is called.
func hold(t *testing.T, mailbox *Mailbox) (release func()) {
	t.Helper()
	require.True(t, mailbox.EventQueue().AcquireControl(newController()))
	released := false
	release = func() {
		if !released {
			released = true
			mailbox.EventQueue().RelinquishControl()
		}
	}
	t.Cleanup(release)
	return release
}

// handlerTag identifies an exception handler by the error it wraps faults in.
func handlerTag(handler ExceptionHandler) string {
	if handler == nil {
		return ""
	}
	err := handler(errBoom)
	if err == nil {
		return "absorbing"
	}
	return err.Error()
}
