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

// Package actorname gives actors an immutable name that other actors can
// read through the request/response contract, and a Directory actor that
// keeps named actors by name.
package actorname

import (
	"github.com/tochemey/golpc/actor"
	gerrors "github.com/tochemey/golpc/errors"
)

// Holder stores an actor name. Embed it next to actor.LPCActor.
type Holder struct {
	name string
}

// ActorName returns the name, or an empty string when none was set.
func (h *Holder) ActorName() string {
	return h.name
}

func (h *Holder) holder() *Holder {
	return h
}

func (h *Holder) set(name string) error {
	switch {
	case name == "":
		return gerrors.ErrNameRequired
	case h.name != "":
		return gerrors.NewErrNameAlreadySet(h.name)
	}
	h.name = name
	return nil
}

// Named is an actor carrying a Holder.
type Named interface {
	actor.Actor
	ActorName() string
	holder() *Holder
}

func isNamed(target actor.Actor) bool {
	_, ok := target.(Named)
	return ok
}

// SetActorName assigns a name to the first Named actor found along the
// target's parent chain. A name can only be set once.
type SetActorName struct {
	Name string
}

var _ actor.Request = (*SetActorName)(nil)

// ProcessRequest implements actor.Request.
func (r *SetActorName) ProcessRequest(target actor.Actor, rp actor.ResponseProcessor) error {
	named, ok := target.(Named)
	if !ok {
		return gerrors.NewErrUnsupportedRequest(r, target)
	}

	if err := named.holder().set(r.Name); err != nil {
		return err
	}
	return rp.ProcessResponse(nil)
}

// IsTargetType implements actor.Request.
func (r *SetActorName) IsTargetType(target actor.Actor) bool {
	return isNamed(target)
}

// GetActorName responds with the name of the first Named actor found along
// the target's parent chain.
type GetActorName struct{}

var _ actor.Request = (*GetActorName)(nil)

// ProcessRequest implements actor.Request.
func (r *GetActorName) ProcessRequest(target actor.Actor, rp actor.ResponseProcessor) error {
	named, ok := target.(Named)
	if !ok {
		return gerrors.NewErrUnsupportedRequest(r, target)
	}
	return rp.ProcessResponse(named.ActorName())
}

// IsTargetType implements actor.Request.
func (r *GetActorName) IsTargetType(target actor.Actor) bool {
	return isNamed(target)
}
