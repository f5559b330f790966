/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a report file next to a snapshot of the
// session's pages.
package crash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "formbuilder/internal/log"
	"formbuilder/internal/telemetry"
	"formbuilder/internal/version"
)

// DirName is the subdirectory of the cache dir that receives crash reports.
const DirName = "crash"

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Session describes what a crash report can learn about the running editor.
// Both hooks are optional.
type Session struct {
	// Dir receives the report; os.TempDir is used when empty.
	Dir string
	// Summary returns a one-line description of the session.
	Summary func() string
	// Snapshot returns a JSON-encodable value saved next to the report.
	Snapshot func() any
}

// Recover captures a panic, logs it with the stack, writes a report and a
// state snapshot, uploads the report when telemetry allows it and exits with
// status 2.
//
// Usage: defer crash.Recover(sess)
func Recover(sess Session) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, report, err := writeReport(sess, r, stack)
	if err != nil {
		l.Error("crash report not written", slog.Any("err", err))
	}
	if sess.Snapshot != nil {
		if path, err := writeSnapshot(reportPath, sess.Snapshot()); err != nil {
			l.Error("crash snapshot failed", slog.Any("err", err))
		} else {
			l.Info("crash snapshot written", slog.String("path", path))
		}
	}
	if report != nil {
		select {
		case <-telemetry.UploadCrash(report):
		case <-time.After(2 * time.Second):
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func reportDir(sess Session) string {
	if sess.Dir == "" {
		return os.TempDir()
	}
	if err := os.MkdirAll(sess.Dir, 0o755); err != nil {
		return os.TempDir()
	}
	return sess.Dir
}

func writeReport(sess Session, panicVal any, stack []byte) (string, []byte, error) {
	stamp := time.Now().Format("20060102-150405.000")
	path := filepath.Join(reportDir(sess), fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Form Builder Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if sess.Summary != nil {
		_, _ = fmt.Fprintf(&buf, "Session: %s\n", sess.Summary())
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, buf.Bytes(), err
	}
	return path, buf.Bytes(), nil
}

// writeSnapshot stores v as indented JSON beside the report at reportPath.
func writeSnapshot(reportPath string, v any) (string, error) {
	path := reportPath[:len(reportPath)-len(filepath.Ext(reportPath))] + ".state.json"
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return path, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return path, err
	}
	return path, nil
}
