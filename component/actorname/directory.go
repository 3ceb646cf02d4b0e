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
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/golpc/actor"
	gerrors "github.com/tochemey/golpc/errors"
)

// Directory keeps named actors by name.
type Directory struct {
	actor.LPCActor
	names  mapset.Set[string]
	actors map[string]actor.Actor
}

// NewDirectory creates a Directory bound to mailbox.
func NewDirectory(mailbox *actor.Mailbox, opts ...actor.InitOption) (*Directory, error) {
	directory := &Directory{
		names:  mapset.NewThreadUnsafeSet[string](),
		actors: make(map[string]actor.Actor),
	}
	if err := actor.Initialize(directory, mailbox, opts...); err != nil {
		return nil, err
	}
	return directory, nil
}

func isDirectory(target actor.Actor) bool {
	_, ok := target.(*Directory)
	return ok
}

// Register asks the actor for its name and keeps it under that name. The
// response is the registered name.
type Register struct {
	Actor actor.Actor
}

var _ actor.Request = (*Register)(nil)

// ProcessRequest implements actor.Request.
func (r *Register) ProcessRequest(target actor.Actor, rp actor.ResponseProcessor) error {
	directory, ok := target.(*Directory)
	if !ok {
		return gerrors.NewErrUnsupportedRequest(r, target)
	}

	named := r.Actor
	return directory.Send(named, &GetActorName{}, actor.ResponseFunc(func(response any) error {
		name, _ := response.(string)
		if name == "" {
			return gerrors.ErrNameRequired
		}

		if !directory.names.Add(name) {
			return gerrors.NewErrNameRegistered(name)
		}

		directory.actors[name] = named
		directory.Mailbox().Logger().Debugf("actor %q registered", name)
		return rp.ProcessResponse(name)
	}))
}

// IsTargetType implements actor.Request.
func (r *Register) IsTargetType(target actor.Actor) bool {
	return isDirectory(target)
}

// Lookup responds with the actor registered under Name, or nil.
type Lookup struct {
	Name string
}

var _ actor.Request = (*Lookup)(nil)

// ProcessRequest implements actor.Request.
func (r *Lookup) ProcessRequest(target actor.Actor, rp actor.ResponseProcessor) error {
	directory, ok := target.(*Directory)
	if !ok {
		return gerrors.NewErrUnsupportedRequest(r, target)
	}

	if r.Name == "" {
		return gerrors.ErrNameRequired
	}

	found, ok := directory.actors[r.Name]
	if !ok {
		return rp.ProcessResponse(nil)
	}
	return rp.ProcessResponse(found)
}

// IsTargetType implements actor.Request.
func (r *Lookup) IsTargetType(target actor.Actor) bool {
	return isDirectory(target)
}

// Names responds with the registered names in lexical order.
type Names struct{}

var _ actor.Request = (*Names)(nil)

// ProcessRequest implements actor.Request.
func (r *Names) ProcessRequest(target actor.Actor, rp actor.ResponseProcessor) error {
	directory, ok := target.(*Directory)
	if !ok {
		return gerrors.NewErrUnsupportedRequest(r, target)
	}

	names := directory.names.ToSlice()
	sort.Strings(names)
	return rp.ProcessResponse(names)
}

// IsTargetType implements actor.Request.
func (r *Names) IsTargetType(target actor.Actor) bool {
	return isDirectory(target)
}
