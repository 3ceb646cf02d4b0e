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

package eventstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(sub Subscriber) []any {
	var payloads []any
	for msg := range sub.Iterator() {
		payloads = append(payloads, msg.Payload())
	}
	return payloads
}

func TestEventsStream(t *testing.T) {
	t.Run("With publish to subscribed topic", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "faults")
		require.Equal(t, 1, broker.SubscribersCount("faults"))
		require.ElementsMatch(t, []string{"faults"}, sub.Topics())

		broker.Publish("faults", "first")
		broker.Publish("faults", "second")
		broker.Publish("other", "ignored")

		assert.Equal(t, []any{"first", "second"}, collect(sub))
		assert.Empty(t, collect(sub))
		broker.Close()
	})
	t.Run("With unsubscribe", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "faults")
		broker.Unsubscribe(sub, "faults")
		broker.Publish("faults", "dropped")

		assert.Empty(t, collect(sub))
		assert.Zero(t, broker.SubscribersCount("faults"))
		assert.Empty(t, sub.Topics())
	})
	t.Run("With remove subscriber", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "a")
		broker.Subscribe(sub, "b")
		broker.RemoveSubscriber(sub)

		assert.False(t, sub.Active())
		assert.Zero(t, broker.SubscribersCount("a"))
		assert.Zero(t, broker.SubscribersCount("b"))

		broker.Subscribe(sub, "a")
		assert.Zero(t, broker.SubscribersCount("a"))
	})
	t.Run("With many subscribers", func(t *testing.T) {
		broker := New()
		first := broker.AddSubscriber()
		second := broker.AddSubscriber()
		broker.Subscribe(first, "faults")
		broker.Subscribe(second, "faults")

		broker.Publish("faults", 1)
		assert.Equal(t, []any{1}, collect(first))
		assert.Equal(t, []any{1}, collect(second))
	})
	t.Run("With close", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "faults")
		broker.Close()
		assert.False(t, sub.Active())
		assert.Zero(t, broker.SubscribersCount("faults"))
	})
	t.Run("With message accessors", func(t *testing.T) {
		msg := NewMessage("topic", "payload")
		assert.Equal(t, "topic", msg.Topic())
		assert.Equal(t, "payload", msg.Payload())
	})
}
