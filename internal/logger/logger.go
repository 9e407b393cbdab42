//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of CustProc.
//
// CustProc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CustProc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CustProc. If not, see https://www.gnu.org/licenses/.

// Package logger provides structured logging for CustProc.
// It wraps the standard log/slog package so every package logs the same way.
//
// Diagnostics go to stderr; stdout is reserved for the status lines printed by
// the command line.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is the default logger instance.
var Logger *slog.Logger

var output io.Writer = os.Stderr

func init() {
	Logger = newLogger(output, slog.LevelWarn)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	Logger = newLogger(output, level)
}

// SetOutput redirects log output, keeping the given level.
func SetOutput(w io.Writer, level slog.Level) {
	output = w
	Logger = newLogger(output, level)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// WithStage returns a logger with pipeline stage context.
func WithStage(l *slog.Logger, stage string) *slog.Logger {
	if l == nil {
		l = Logger
	}
	return l.With("stage", stage)
}

// LogStageEnd logs the completion of a pipeline stage at debug level.
func LogStageEnd(l *slog.Logger, stage string, records int, duration time.Duration) {
	WithStage(l, stage).Debug("stage completed",
		slog.Int("records", records),
		slog.Duration("duration", duration),
	)
}
