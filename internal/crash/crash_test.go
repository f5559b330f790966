package crash

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, report, err := writeReport(Session{}, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	if filepath.Dir(path) != filepath.Clean(os.TempDir()) {
		t.Fatalf("report at %s, want under temp dir", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(b) != string(report) {
		t.Fatalf("returned report differs from file")
	}
	s := string(b)
	for _, want := range []string{"Form Builder Crash Report", "Panic: boom", "stacktrace"} {
		if !strings.Contains(s, want) {
			t.Fatalf("report missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Session:") {
		t.Fatalf("session line without summary hook")
	}
}

func TestWriteReportUsesSessionDirAndSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DirName)
	path, _, err := writeReport(Session{Dir: dir, Summary: func() string { return "pages=1 items=2" }}, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report at %s, want under %s", path, dir)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "Session: pages=1 items=2") {
		t.Fatalf("summary missing:\n%s", b)
	}
}

func TestRecover_WritesReportAndSnapshot(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	dir := t.TempDir()
	sess := Session{
		Dir:      dir,
		Summary:  func() string { return "pages=2" },
		Snapshot: func() any { return map[string]any{"pages": []string{"Page 1", "Page 2"}} },
	}
	func() {
		defer Recover(sess)
		panic("boom")
	}()

	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
	files, _ := os.ReadDir(dir)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	if len(names) != 2 {
		t.Fatalf("files = %v, want report and snapshot", names)
	}
	var report, snap string
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".state.json"):
			snap = filepath.Join(dir, n)
		case strings.HasPrefix(n, "crash-") && strings.HasSuffix(n, ".log"):
			report = filepath.Join(dir, n)
		}
	}
	if report == "" || snap == "" {
		t.Fatalf("unexpected files %v", names)
	}
	if b, _ := os.ReadFile(report); !strings.Contains(string(b), "Panic: boom") {
		t.Fatalf("report does not contain panic: %s", b)
	}
	var got map[string][]string
	b, _ := os.ReadFile(snap)
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("snapshot json: %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"pages": {"Page 1", "Page 2"}}, got); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
}

func TestRecover_NoPanicIsNoop(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(Session{Dir: t.TempDir()})
	}()
	if called {
		t.Fatalf("exit called without a panic")
	}
}
