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

package log

import (
	"io"
	golog "log"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger writes info and above to os.Stdout.
	DefaultLogger Logger = NewZap(InfoLevel, os.Stdout)
	// DebugLogger writes debug and above to os.Stdout.
	DebugLogger Logger = NewZap(DebugLevel, os.Stdout)
)

const (
	fileBufferSize    = 256 * 1024
	fileFlushInterval = 30 * time.Second
)

var toZap = map[Level]zapcore.Level{
	DebugLevel:   zapcore.DebugLevel,
	InfoLevel:    zapcore.InfoLevel,
	WarningLevel: zapcore.WarnLevel,
	ErrorLevel:   zapcore.ErrorLevel,
	PanicLevel:   zapcore.PanicLevel,
	FatalLevel:   zapcore.FatalLevel,
}

// Zap implements Logger on top of go.uber.org/zap.
//
// Standard streams and in-memory writers are written synchronously. Regular
// files receive entries below error level through a buffered syncer; call
// Flush on shutdown to drain it.
type Zap struct {
	logger   *zap.Logger
	sugar    *zap.SugaredLogger
	outputs  []io.Writer
	buffered *zapcore.BufferedWriteSyncer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a Zap logger writing JSON entries to the given writers.
// An unknown level falls back to debug.
func NewZap(level Level, writers ...io.Writer) *Zap {
	zapLevel, ok := toZap[level]
	if !ok {
		zapLevel = zapcore.DebugLevel
	}

	direct, files := partitionWriters(writers)
	core, buffered := buildCore(zapLevel, direct, files)
	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		logger:   logger,
		sugar:    logger.Sugar(),
		outputs:  writers,
		buffered: buffered,
	}
}

func (z *Zap) Debug(v ...any)                 { z.sugar.Debug(v...) }
func (z *Zap) Debugf(format string, v ...any) { z.sugar.Debugf(format, v...) }
func (z *Zap) Info(v ...any)                  { z.sugar.Info(v...) }
func (z *Zap) Infof(format string, v ...any)  { z.sugar.Infof(format, v...) }
func (z *Zap) Warn(v ...any)                  { z.sugar.Warn(v...) }
func (z *Zap) Warnf(format string, v ...any)  { z.sugar.Warnf(format, v...) }
func (z *Zap) Error(v ...any)                 { z.sugar.Error(v...) }
func (z *Zap) Errorf(format string, v ...any) { z.sugar.Errorf(format, v...) }
func (z *Zap) Fatal(v ...any)                 { z.sugar.Fatal(v...) }
func (z *Zap) Fatalf(format string, v ...any) { z.sugar.Fatalf(format, v...) }
func (z *Zap) Panic(v ...any)                 { z.sugar.Panic(v...) }
func (z *Zap) Panicf(format string, v ...any) { z.sugar.Panicf(format, v...) }

// Enabled reports whether the given level is enabled.
func (z *Zap) Enabled(level Level) bool {
	zapLevel, ok := toZap[level]
	return ok && z.logger.Core().Enabled(zapLevel)
}

// With returns a child logger carrying the key-value pairs. Non-string keys
// are skipped and a trailing value without a key is recorded under "_".
func (z *Zap) With(keyValues ...any) Logger {
	if len(keyValues) == 0 {
		return z
	}

	fields := make([]zap.Field, 0, (len(keyValues)+1)/2)
	for i := 0; i < len(keyValues); i += 2 {
		if i+1 == len(keyValues) {
			fields = append(fields, zap.Any("_", keyValues[i]))
			break
		}
		if key, ok := keyValues[i].(string); ok {
			fields = append(fields, zap.Any(key, keyValues[i+1]))
		}
	}

	if len(fields) == 0 {
		return z
	}

	child := z.logger.With(fields...)
	return &Zap{
		logger:   child,
		sugar:    child.Sugar(),
		outputs:  z.outputs,
		buffered: z.buffered,
	}
}

// LogLevel returns the log level that is used
func (z *Zap) LogLevel() Level {
	current := z.logger.Level()
	for level, zapLevel := range toZap {
		if zapLevel == current {
			return level
		}
	}
	return InvalidLevel
}

// LogOutput returns the log output that is set
func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

// StdLogger returns a standard library logger writing through zap.
func (z *Zap) StdLogger() *golog.Logger {
	std, _ := zap.NewStdLogAt(z.logger, z.logger.Level())
	return std
}

// Flush drains buffered file output and syncs the underlying files.
func (z *Zap) Flush() error {
	var err error
	if z.buffered != nil {
		err = multierr.Append(err, z.buffered.Sync())
	}

	for _, output := range z.outputs {
		if file, ok := output.(*os.File); ok && !isStdStream(file) {
			err = multierr.Append(err, file.Sync())
		}
	}
	return err
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// partitionWriters separates regular files, which get buffered, from
// everything else.
func partitionWriters(writers []io.Writer) (direct, files []zapcore.WriteSyncer) {
	for _, writer := range writers {
		if file, ok := writer.(*os.File); ok && !isStdStream(file) {
			files = append(files, zapcore.AddSync(file))
			continue
		}
		direct = append(direct, zapcore.AddSync(writer))
	}
	return direct, files
}

func isStdStream(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return fd == os.Stdout.Fd() || fd == os.Stderr.Fd()
}

func buildCore(level zapcore.Level, direct, files []zapcore.WriteSyncer) (zapcore.Core, *zapcore.BufferedWriteSyncer) {
	encoder := zapcore.NewJSONEncoder(encoderConfig())
	everything := zap.CombineWriteSyncers(append(append([]zapcore.WriteSyncer{}, direct...), files...)...)
	if level >= zapcore.ErrorLevel || len(files) == 0 {
		return zapcore.NewCore(encoder, everything, level), nil
	}

	buffered := &zapcore.BufferedWriteSyncer{
		WS:            zap.CombineWriteSyncers(files...),
		Size:          fileBufferSize,
		FlushInterval: fileFlushInterval,
	}

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= level && l < zapcore.ErrorLevel })
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= level && l >= zapcore.ErrorLevel })

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, buffered, low),
		zapcore.NewCore(encoder.Clone(), everything, high),
	}
	if len(direct) > 0 {
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zap.CombineWriteSyncers(direct...), low))
	}
	return zapcore.NewTee(cores...), buffered
}
