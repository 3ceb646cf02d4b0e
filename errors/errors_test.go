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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addRequest struct{}

func TestErrors(t *testing.T) {
	t.Run("With configuration error", func(t *testing.T) {
		err := NewConfigurationError(ErrMailboxRequired)
		require.EqualError(t, err, "configuration error: mailbox may not be nil")
		assert.ErrorIs(t, err, ErrMailboxRequired)
		assert.True(t, IsConfigurationError(fmt.Errorf("init: %w", err)))
		assert.False(t, IsConfigurationError(ErrMailboxRequired))
	})
	t.Run("With request errors", func(t *testing.T) {
		err := NewErrNoTargetActor(&addRequest{})
		assert.ErrorIs(t, err, ErrNoTargetActor)
		assert.Contains(t, err.Error(), "*errors.addRequest")

		err = NewErrUnsupportedRequest(addRequest{}, 42)
		assert.ErrorIs(t, err, ErrUnsupportedRequest)
		assert.Contains(t, err.Error(), "int")

		err = NewErrNameAlreadySet("calculator")
		assert.ErrorIs(t, err, ErrNameAlreadySet)
		assert.Contains(t, err.Error(), "calculator")
	})
	t.Run("With panic error", func(t *testing.T) {
		cause := errors.New("divide by zero")
		err := NewPanicError(cause)
		require.EqualError(t, err, "panic: divide by zero")
		assert.ErrorIs(t, err, cause)
	})
	t.Run("With recovered error value", func(t *testing.T) {
		cause := errors.New("boom")
		var pe *PanicError
		func() {
			defer func() { pe = Recovered(recover()) }()
			panic(cause)
		}()
		require.NotNil(t, pe)
		assert.ErrorIs(t, pe, cause)
		assert.Contains(t, pe.Error(), "panic: boom at")
	})
	t.Run("With recovered non error value", func(t *testing.T) {
		var pe *PanicError
		func() {
			defer func() { pe = Recovered(recover()) }()
			panic("bad state")
		}()
		require.NotNil(t, pe)
		assert.Contains(t, pe.Error(), `"bad state"`)
	})
	t.Run("With recovered panic error kept as is", func(t *testing.T) {
		original := NewPanicError(errors.New("inner"))
		assert.Same(t, original, Recovered(original))
	})
	t.Run("With transparent error", func(t *testing.T) {
		cause := errors.New("continuation failed")
		err := NewTransparentError(cause)
		require.EqualError(t, err, "continuation failed")
		assert.ErrorIs(t, err, cause)

		wrapped := fmt.Errorf("callee: %w", err)
		found, ok := AsTransparent(wrapped)
		require.True(t, ok)
		assert.Same(t, err, found)

		_, ok = AsTransparent(cause)
		assert.False(t, ok)
	})
	t.Run("With nested transparent errors only the outermost is unwrapped", func(t *testing.T) {
		cause := errors.New("outer continuation failed")
		inner := NewTransparentError(cause)
		outer := NewTransparentError(inner)

		found, ok := AsTransparent(outer)
		require.True(t, ok)
		assert.Same(t, inner, found.Unwrap())
	})
}
