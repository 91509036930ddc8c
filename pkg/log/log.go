// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 Logger is the diagnostics stream of a copy run. Every line goes to the
// console writer and is mirrored to zerolog.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	lines   []string
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Discard returns a logger that records lines but prints nothing.
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop())
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding one
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok && logger != nil {
		return logger
	}
	return Discard()
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Lines returns every line written so far, without decoration.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// String joins the recorded lines.
func (l *Logger) String() string {
	return strings.Join(l.Lines(), "\n")
}

func (l *Logger) write(decorated, plain string, ev *zerolog.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, plain)
	fmt.Fprintln(l.console, decorated)
	ev.Msg(plain)
}

// 📝 Println writes a plain diagnostic line
func (l *Logger) Println(msg string) {
	l.write(msg, msg, l.zlog.Info())
}

// 📝 Printf writes a formatted plain diagnostic line
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Println(fmt.Sprintf(format, args...))
}

// 📝 Block writes a title line followed by a multi-line body, such as a document dump
func (l *Logger) Block(title, body string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, title, body)
	fmt.Fprintln(l.console, color.New(color.Faint).Sprint(title))
	fmt.Fprintln(l.console, body)
	l.zlog.Debug().Str("body", body).Msg(title)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	viewcopyText := color.New(color.Bold, color.FgCyan).Sprint("viewcopy")
	l.write(fmt.Sprintf("\n%s %s\n", viewcopyText, color.New(color.Faint).Sprint("• "+msg)), msg, l.zlog.Info())
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.write(fmt.Sprintf("✅ %s", color.New(color.FgGreen).Sprint(msg)), msg, l.zlog.Info())
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.write(fmt.Sprintf("⚠️  %s", color.New(color.FgYellow).Sprint(msg)), msg, l.zlog.Warn())
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.write(fmt.Sprintf("❌ %s", color.New(color.FgRed).Sprint(msg)), msg, l.zlog.Error())
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.write(fmt.Sprintf("ℹ️  %s", color.New(color.FgCyan).Sprint(msg)), msg, l.zlog.Info())
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
