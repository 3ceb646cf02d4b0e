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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	gerrors "github.com/tochemey/golpc/errors"
	"github.com/tochemey/golpc/log"
)

const (
	// DefaultInitialBufferCapacity is the capacity hint of a mailbox's per-destination buffers.
	DefaultInitialBufferCapacity = 10
	// DefaultShutdownTimeout bounds how long a factory waits for mailboxes to go idle on close.
	DefaultShutdownTimeout = 5 * time.Second
	// DefaultShutdownMaxRetries bounds how many times a factory checks for idleness on close.
	DefaultShutdownMaxRetries = 5
)

// Config holds the runtime settings of a mailbox factory.
type Config struct {
	// InitialBufferCapacity is the starting capacity of the batches a mailbox
	// accumulates per destination before they are flushed.
	InitialBufferCapacity int
	// MetricsEnabled turns on the dispatch instruments.
	MetricsEnabled bool
	// ShutdownTimeout bounds the wait for in-flight work on close.
	ShutdownTimeout time.Duration
	// ShutdownMaxRetries bounds the idleness checks performed on close.
	ShutdownMaxRetries int
	// Logger is the logger used by the factory and its mailboxes.
	Logger log.Logger
}

// environment mirrors the settings that can be read from the process environment.
type environment struct {
	InitialBufferCapacity int           `env:"GOLPC_INITIAL_BUFFER_CAPACITY" envDefault:"10"`
	LogLevel              string        `env:"GOLPC_LOG_LEVEL" envDefault:"info"`
	MetricsEnabled        bool          `env:"GOLPC_METRICS_ENABLED" envDefault:"false"`
	ShutdownTimeout       time.Duration `env:"GOLPC_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	ShutdownMaxRetries    int           `env:"GOLPC_SHUTDOWN_MAX_RETRIES" envDefault:"5"`
}

// New creates an instance of Config with the defaults and the given options applied.
func New(options ...Option) (*Config, error) {
	config := &Config{
		InitialBufferCapacity: DefaultInitialBufferCapacity,
		ShutdownTimeout:       DefaultShutdownTimeout,
		ShutdownMaxRetries:    DefaultShutdownMaxRetries,
		Logger:                log.DefaultLogger,
	}

	for _, opt := range options {
		opt.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FromEnv creates a Config from the GOLPC_* environment variables. Options
// are applied after the environment and take precedence.
func FromEnv(options ...Option) (*Config, error) {
	var vars environment
	if err := env.Parse(&vars); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	level, err := log.ParseLevel(vars.LogLevel)
	if err != nil {
		return nil, errors.Join(gerrors.ErrInvalidLogLevel, err)
	}

	config := &Config{
		InitialBufferCapacity: vars.InitialBufferCapacity,
		MetricsEnabled:        vars.MetricsEnabled,
		ShutdownTimeout:       vars.ShutdownTimeout,
		ShutdownMaxRetries:    vars.ShutdownMaxRetries,
		Logger:                log.NewZap(level, os.Stdout),
	}

	for _, opt := range options {
		opt.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.InitialBufferCapacity <= 0 {
		return gerrors.ErrInvalidBufferCapacity
	}

	if c.ShutdownTimeout <= 0 {
		return gerrors.ErrInvalidShutdownTimeout
	}

	if c.ShutdownMaxRetries <= 0 {
		c.ShutdownMaxRetries = DefaultShutdownMaxRetries
	}

	if c.Logger == nil {
		c.Logger = log.DefaultLogger
	}
	return nil
}
