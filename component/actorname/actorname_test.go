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

package actorname

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/golpc/actor"
	gerrors "github.com/tochemey/golpc/errors"
	"github.com/tochemey/golpc/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type worker struct {
	actor.LPCActor
	Holder
}

type helper struct {
	actor.LPCActor
}

func newFactory(t *testing.T) *actor.MailboxFactory {
	t.Helper()
	factory, err := actor.NewMailboxFactory(actor.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, factory.Close(context.Background()))
	})
	return factory
}

func newMailbox(t *testing.T, factory *actor.MailboxFactory) *actor.Mailbox {
	t.Helper()
	mailbox, err := factory.CreateMailbox()
	require.NoError(t, err)
	return mailbox
}

func newWorker(t *testing.T, mailbox *actor.Mailbox, name string) *worker {
	t.Helper()
	w := new(worker)
	require.NoError(t, actor.Initialize(w, mailbox))
	if name != "" {
		_, err := ask(w, &SetActorName{Name: name})
		require.NoError(t, err)
	}
	return w
}

func ask(target actor.Actor, request actor.Request) (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return actor.Ask(ctx, target, request)
}

func TestActorName(t *testing.T) {
	factory := newFactory(t)

	t.Run("With a name set once", func(t *testing.T) {
		w := newWorker(t, newMailbox(t, factory), "")

		name, err := ask(w, &GetActorName{})
		require.NoError(t, err)
		assert.Empty(t, name)

		_, err = ask(w, &SetActorName{Name: "alpha"})
		require.NoError(t, err)

		name, err = ask(w, &GetActorName{})
		require.NoError(t, err)
		assert.Equal(t, "alpha", name)

		_, err = ask(w, &SetActorName{Name: "beta"})
		require.ErrorIs(t, err, gerrors.ErrNameAlreadySet)
		assert.Contains(t, err.Error(), "alpha")
		assert.Equal(t, "alpha", w.ActorName())
	})
	t.Run("With an empty name", func(t *testing.T) {
		w := newWorker(t, newMailbox(t, factory), "")
		_, err := ask(w, &SetActorName{})
		assert.ErrorIs(t, err, gerrors.ErrNameRequired)
	})
	t.Run("With the name held by a parent", func(t *testing.T) {
		mailbox := newMailbox(t, factory)
		w := newWorker(t, mailbox, "parent")
		h := new(helper)
		require.NoError(t, actor.Initialize(h, mailbox, actor.WithParent(w)))

		name, err := ask(h, &GetActorName{})
		require.NoError(t, err)
		assert.Equal(t, "parent", name)
	})
	t.Run("With no named actor in the chain", func(t *testing.T) {
		h := new(helper)
		require.NoError(t, actor.Initialize(h, newMailbox(t, factory)))

		_, err := ask(h, &GetActorName{})
		assert.ErrorIs(t, err, gerrors.ErrNoTargetActor)
		assert.False(t, (&SetActorName{}).IsTargetType(h))
	})
}

func TestDirectory(t *testing.T) {
	factory := newFactory(t)
	mailbox := newMailbox(t, factory)
	directory, err := NewDirectory(mailbox)
	require.NoError(t, err)

	local := newWorker(t, mailbox, "local")
	remote := newWorker(t, newMailbox(t, factory), "remote")

	t.Run("With actors registered by their names", func(t *testing.T) {
		name, err := ask(directory, &Register{Actor: local})
		require.NoError(t, err)
		assert.Equal(t, "local", name)

		name, err = ask(directory, &Register{Actor: remote})
		require.NoError(t, err)
		assert.Equal(t, "remote", name)

		names, err := ask(directory, &Names{})
		require.NoError(t, err)
		assert.Equal(t, []string{"local", "remote"}, names)

		found, err := ask(directory, &Lookup{Name: "remote"})
		require.NoError(t, err)
		assert.Same(t, remote, found)

		found, err = ask(directory, &Lookup{Name: "missing"})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
	t.Run("With a name registered twice", func(t *testing.T) {
		twin := newWorker(t, newMailbox(t, factory), "local")
		_, err := ask(directory, &Register{Actor: twin})
		require.ErrorIs(t, err, gerrors.ErrNameRegistered)

		found, err := ask(directory, &Lookup{Name: "local"})
		require.NoError(t, err)
		assert.Same(t, local, found)
	})
	t.Run("With an unnamed actor", func(t *testing.T) {
		anonymous := newWorker(t, mailbox, "")
		_, err := ask(directory, &Register{Actor: anonymous})
		assert.ErrorIs(t, err, gerrors.ErrNameRequired)
	})
	t.Run("With an actor that cannot carry a name", func(t *testing.T) {
		h := new(helper)
		require.NoError(t, actor.Initialize(h, mailbox))
		_, err := ask(directory, &Register{Actor: h})
		assert.ErrorIs(t, err, gerrors.ErrNoTargetActor)
	})
	t.Run("With an empty lookup", func(t *testing.T) {
		_, err := ask(directory, &Lookup{})
		assert.ErrorIs(t, err, gerrors.ErrNameRequired)
	})
	t.Run("With a request sent to the wrong kind of actor", func(t *testing.T) {
		err := (&Names{}).ProcessRequest(local, actor.NoResponse)
		assert.ErrorIs(t, err, gerrors.ErrUnsupportedRequest)
	})
}
