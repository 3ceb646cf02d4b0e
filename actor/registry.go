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
	"github.com/zeebo/xxh3"

	"github.com/tochemey/golpc/internal/xsync"
)

const registryShards = 16

// registry keeps track of the mailboxes created by a factory, sharded by
// the hash of their identifier.
type registry struct {
	shards [registryShards]*xsync.Map[string, *Mailbox]
}

func newRegistry() *registry {
	r := new(registry)
	for i := range r.shards {
		r.shards[i] = xsync.NewMap[string, *Mailbox]()
	}
	return r
}

func (r *registry) shard(id string) *xsync.Map[string, *Mailbox] {
	return r.shards[xxh3.HashString(id)%registryShards]
}

func (r *registry) add(mailbox *Mailbox) {
	r.shard(mailbox.id).Set(mailbox.id, mailbox)
}

func (r *registry) get(id string) (*Mailbox, bool) {
	return r.shard(id).Get(id)
}

func (r *registry) len() int {
	total := 0
	for _, shard := range r.shards {
		total += shard.Len()
	}
	return total
}

// busy counts the mailboxes that are controlled or have pending messages.
func (r *registry) busy() int {
	count := 0
	for _, shard := range r.shards {
		shard.Range(func(_ string, mailbox *Mailbox) {
			if !mailbox.queue.idle() {
				count++
			}
		})
	}
	return count
}

func (r *registry) forEach(f func(*Mailbox)) {
	for _, shard := range r.shards {
		for _, mailbox := range shard.Values() {
			f(mailbox)
		}
	}
}

func (r *registry) reset() {
	for _, shard := range r.shards {
		shard.Reset()
	}
}
