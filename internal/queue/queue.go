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

package queue

import "sync"

// minCapacity is the smallest ring size. It must be a power of 2 so that
// indexes wrap with a mask.
const minCapacity = 16

// Queue is an unbounded FIFO backed by a ring buffer that grows and shrinks
// in powers of two. It is safe for concurrent use.
type Queue[T any] struct {
	mu     sync.Mutex
	nodes  []T
	head   int
	tail   int
	count  int
	closed bool
}

// New creates an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{nodes: make([]T, minCapacity)}
}

// Push appends v to the back of the queue. It returns false, dropping v,
// once the queue is closed.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	if q.count == len(q.nodes) {
		q.resize(q.count << 1)
	}
	q.nodes[q.tail] = v
	q.tail = (q.tail + 1) & (len(q.nodes) - 1)
	q.count++
	return true
}

// Pop removes the front item. It returns false when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if q.count == 0 {
		return zero, false
	}
	v := q.nodes[q.head]
	q.nodes[q.head] = zero
	q.head = (q.head + 1) & (len(q.nodes) - 1)
	q.count--
	if len(q.nodes) > minCapacity && q.count<<2 == len(q.nodes) {
		q.resize(len(q.nodes) >> 1)
	}
	return v, true
}

// Drain removes and returns every queued item in FIFO order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := make([]T, 0, q.count)
	for q.count > 0 {
		items = append(items, q.nodes[q.head])
		q.head = (q.head + 1) & (len(q.nodes) - 1)
		q.count--
	}
	q.nodes = make([]T, minCapacity)
	q.head, q.tail = 0, 0
	return items
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// IsEmpty reports whether the queue holds no item.
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Close discards the queued items and rejects further pushes.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.count = 0
	q.head, q.tail = 0, 0
	q.nodes = make([]T, minCapacity)
}

// resize copies the live items, oldest first, into a ring of the given size.
func (q *Queue[T]) resize(size int) {
	nodes := make([]T, size)
	if q.tail > q.head {
		copy(nodes, q.nodes[q.head:q.tail])
	} else if q.count > 0 {
		n := copy(nodes, q.nodes[q.head:])
		copy(nodes[n:], q.nodes[:q.tail])
	}
	q.head = 0
	q.tail = q.count & (size - 1)
	q.nodes = nodes
}
