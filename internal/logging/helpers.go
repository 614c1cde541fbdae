// Copyright 2025 Emiliano Spinella (eminwux)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eminwux/wordpass/internal/errdefs"
	"github.com/spf13/cobra"
)

func ParseLevel(lvl string) slog.Level {
	switch lvl {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		// default if unknown
		return slog.LevelInfo
	}
}

// NewNoopLogger returns a logger that discards every record.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds a ReformatHandler-backed logger writing to w. The level
// can be changed later through the returned LevelVar.
func NewLogger(w io.Writer, loglevel string) (*slog.Logger, *slog.LevelVar) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(ParseLevel(loglevel))

	handler := &ReformatHandler{
		Inner:  slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}),
		Writer: w,
	}
	return slog.New(handler), levelVar
}

// LoggerFromContext returns the logger stored under CtxLogger.
func LoggerFromContext(ctx context.Context) (*slog.Logger, error) {
	if ctx == nil {
		return nil, errdefs.ErrLoggerNotFound
	}
	logger, ok := ctx.Value(CtxLogger).(*slog.Logger)
	if !ok || logger == nil {
		return nil, errdefs.ErrLoggerNotFound
	}
	return logger, nil
}

// SetupWriterLogger replaces the command context logger with one writing to w.
func SetupWriterLogger(cmd *cobra.Command, w io.Writer, loglevel string) error {
	if cmd == nil || w == nil {
		return errors.New("cmd and writer must not be nil")
	}
	logger, levelVar := NewLogger(w, loglevel)
	setContext(cmd, logger, levelVar)
	return nil
}

// SetupFileLogger opens logfile in append mode and stores the resulting logger
// and the file closer in the command context.
func SetupFileLogger(cmd *cobra.Command, logfile string, loglevel string) error {
	if cmd == nil || logfile == "" || loglevel == "" {
		return errors.New("cmd, logfile, and loglevel must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(logfile), 0o700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logger, levelVar := NewLogger(f, loglevel)
	setContext(cmd, logger, levelVar)
	cmd.SetContext(context.WithValue(cmd.Context(), CtxCloser, io.Closer(f)))
	return nil
}

// SetLevel changes the level of the logger stored in ctx. It reports false
// when ctx carries no LevelVar, e.g. for the default noop logger.
func SetLevel(ctx context.Context, loglevel string) bool {
	if ctx == nil {
		return false
	}
	levelVar, ok := ctx.Value(CtxLevelVar).(*slog.LevelVar)
	if !ok || levelVar == nil {
		return false
	}
	levelVar.Set(ParseLevel(loglevel))
	return true
}

// CloseLogger closes the log file opened by SetupFileLogger, if any.
func CloseLogger(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	closer, ok := ctx.Value(CtxCloser).(io.Closer)
	if !ok || closer == nil {
		return nil
	}
	return closer.Close()
}

func setContext(cmd *cobra.Command, logger *slog.Logger, levelVar *slog.LevelVar) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, CtxLogger, logger)
	ctx = context.WithValue(ctx, CtxLevelVar, levelVar)
	cmd.SetContext(ctx)
}
