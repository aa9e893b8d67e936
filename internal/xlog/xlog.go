// Copyright 2025 CUE Authors
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

// Package xlog is the solver's structured-logging seam: it wraps an
// optional *slog.Logger so a caller who never wires one still gets
// silent, zero-cost operation.
package xlog

import (
	"context"
	"log/slog"
)

// Logger wraps an optional *slog.Logger. A zero Logger is silent.
type Logger struct {
	l *slog.Logger
}

// New wraps l. A nil l produces a silent Logger.
func New(l *slog.Logger) Logger {
	return Logger{l: l}
}

// Debug logs a debug-level event with the given attributes, a no-op if no
// logger was configured.
func (lg Logger) Debug(ctx context.Context, msg string, args ...any) {
	if lg.l == nil {
		return
	}
	lg.l.DebugContext(ctx, msg, args...)
}

// Enabled reports whether debug logging is configured at all, so callers
// can skip building expensive attribute values when it is not.
func (lg Logger) Enabled() bool {
	return lg.l != nil
}

// With returns a Logger that attaches args to every subsequent line, a
// no-op on a silent Logger. newEnv uses this to stamp every line of a
// solve with its correlation id.
func (lg Logger) With(args ...any) Logger {
	if lg.l == nil {
		return lg
	}
	return Logger{l: lg.l.With(args...)}
}
