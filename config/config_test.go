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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/golpc/errors"
	"github.com/tochemey/golpc/log"
)

func TestConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, DefaultInitialBufferCapacity, cfg.InitialBufferCapacity)
		assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
		assert.Equal(t, DefaultShutdownMaxRetries, cfg.ShutdownMaxRetries)
		assert.False(t, cfg.MetricsEnabled)
		assert.Equal(t, log.DefaultLogger, cfg.Logger)
	})
	t.Run("With options", func(t *testing.T) {
		cfg, err := New(
			WithInitialBufferCapacity(32),
			WithMetrics(),
			WithShutdownTimeout(time.Second),
			WithShutdownMaxRetries(2),
			WithLogger(log.DiscardLogger),
		)
		require.NoError(t, err)
		assert.Equal(t, 32, cfg.InitialBufferCapacity)
		assert.True(t, cfg.MetricsEnabled)
		assert.Equal(t, time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, 2, cfg.ShutdownMaxRetries)
		assert.Equal(t, log.DiscardLogger, cfg.Logger)
	})
	t.Run("With invalid buffer capacity", func(t *testing.T) {
		cfg, err := New(WithInitialBufferCapacity(0))
		require.ErrorIs(t, err, gerrors.ErrInvalidBufferCapacity)
		assert.Nil(t, cfg)
	})
	t.Run("With invalid shutdown timeout", func(t *testing.T) {
		cfg, err := New(WithShutdownTimeout(-time.Second))
		require.ErrorIs(t, err, gerrors.ErrInvalidShutdownTimeout)
		assert.Nil(t, cfg)
	})
	t.Run("With nil logger and no retries falls back to defaults", func(t *testing.T) {
		cfg, err := New(WithLogger(nil), WithShutdownMaxRetries(0))
		require.NoError(t, err)
		assert.Equal(t, log.DefaultLogger, cfg.Logger)
		assert.Equal(t, DefaultShutdownMaxRetries, cfg.ShutdownMaxRetries)
	})
}

func TestFromEnv(t *testing.T) {
	t.Run("With environment defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultInitialBufferCapacity, cfg.InitialBufferCapacity)
		assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
		assert.Equal(t, log.InfoLevel, cfg.Logger.LogLevel())
	})
	t.Run("With environment values", func(t *testing.T) {
		t.Setenv("GOLPC_INITIAL_BUFFER_CAPACITY", "64")
		t.Setenv("GOLPC_LOG_LEVEL", "debug")
		t.Setenv("GOLPC_METRICS_ENABLED", "true")
		t.Setenv("GOLPC_SHUTDOWN_TIMEOUT", "250ms")
		t.Setenv("GOLPC_SHUTDOWN_MAX_RETRIES", "3")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.InitialBufferCapacity)
		assert.True(t, cfg.MetricsEnabled)
		assert.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
		assert.Equal(t, 3, cfg.ShutdownMaxRetries)
		assert.Equal(t, log.DebugLevel, cfg.Logger.LogLevel())
	})
	t.Run("With options overriding the environment", func(t *testing.T) {
		t.Setenv("GOLPC_INITIAL_BUFFER_CAPACITY", "64")
		cfg, err := FromEnv(WithInitialBufferCapacity(8), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.InitialBufferCapacity)
		assert.Equal(t, log.DiscardLogger, cfg.Logger)
	})
	t.Run("With malformed value", func(t *testing.T) {
		t.Setenv("GOLPC_SHUTDOWN_TIMEOUT", "soon")
		cfg, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env")
		assert.Nil(t, cfg)
	})
	t.Run("With unknown log level", func(t *testing.T) {
		t.Setenv("GOLPC_LOG_LEVEL", "loud")
		cfg, err := FromEnv()
		require.ErrorIs(t, err, gerrors.ErrInvalidLogLevel)
		assert.Nil(t, cfg)
	})
	t.Run("With invalid capacity from environment", func(t *testing.T) {
		t.Setenv("GOLPC_INITIAL_BUFFER_CAPACITY", "-1")
		cfg, err := FromEnv()
		require.ErrorIs(t, err, gerrors.ErrInvalidBufferCapacity)
		assert.Nil(t, cfg)
	})
}
