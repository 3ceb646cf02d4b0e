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
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/golpc/internal/queue"
)

// Subscriber receives the messages published on the topics it subscribed to.
type Subscriber interface {
	ID() string
	Active() bool
	Topics() []string
	// Iterator drains the buffered messages into a closed channel.
	Iterator() chan *Message
	Shutdown()
	signal(message *Message)
	subscribe(topic string)
	unsubscribe(topic string)
}

type subscriber struct {
	id       string
	mu       sync.Mutex
	messages *queue.Queue[*Message]
	topics   map[string]struct{}
	active   *atomic.Bool
}

var _ Subscriber = (*subscriber)(nil)

func newSubscriber() *subscriber {
	return &subscriber{
		id:       uuid.NewString(),
		messages: queue.New[*Message](),
		topics:   make(map[string]struct{}),
		active:   atomic.NewBool(true),
	}
}

// ID return subscriber id
func (x *subscriber) ID() string {
	return x.id
}

// Active checks whether the subscriber is active
func (x *subscriber) Active() bool {
	return x.active.Load()
}

// Topics returns the topics the subscriber has subscribed to
func (x *subscriber) Topics() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	topics := make([]string, 0, len(x.topics))
	for topic := range x.topics {
		topics = append(topics, topic)
	}
	return topics
}

// Shutdown deactivates the subscriber and drops its buffered messages
func (x *subscriber) Shutdown() {
	if x.active.CompareAndSwap(true, false) {
		x.messages.Close()
	}
}

func (x *subscriber) Iterator() chan *Message {
	messages := x.messages.Drain()
	out := make(chan *Message, len(messages))
	for _, msg := range messages {
		out <- msg
	}
	close(out)
	return out
}

func (x *subscriber) signal(message *Message) {
	if x.active.Load() {
		x.messages.Push(message)
	}
}

func (x *subscriber) subscribe(topic string) {
	x.mu.Lock()
	x.topics[topic] = struct{}{}
	x.mu.Unlock()
}

func (x *subscriber) unsubscribe(topic string) {
	x.mu.Lock()
	delete(x.topics, topic)
	x.mu.Unlock()
}
