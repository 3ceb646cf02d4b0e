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

package xsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	value, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, value)
	assert.Equal(t, 2, m.Len())

	assert.False(t, m.SetIfAbsent("a", 10))
	assert.True(t, m.SetIfAbsent("c", 3))
	value, _ = m.Get("a")
	assert.Equal(t, 1, value)

	sum := 0
	m.Range(func(_ string, v int) { sum += v })
	assert.Equal(t, 6, sum)
	assert.ElementsMatch(t, []int{1, 2, 3}, m.Values())

	m.Delete("b")
	_, ok = m.Get("b")
	assert.False(t, ok)

	m.Reset()
	assert.Zero(t, m.Len())
}

func TestMapConcurrentSetIfAbsent(t *testing.T) {
	m := NewMap[int, int]()
	var wg sync.WaitGroup
	stored := make(chan bool, 64)
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored <- m.SetIfAbsent(1, i)
		}()
	}
	wg.Wait()
	close(stored)

	winners := 0
	for ok := range stored {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, m.Len())
}
