package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"formbuilder/internal/config"
)

type noKeyring struct{}

type fixedKeyring struct{ token string }

func (k fixedKeyring) Get(string, string) (string, error) { return k.token, nil }
func (fixedKeyring) Set(string, string, string) error     { return nil }
func (fixedKeyring) Delete(string, string) error          { return nil }

func (noKeyring) Get(string, string) (string, error) { return "", nil }
func (noKeyring) Set(string, string, string) error   { return nil }
func (noKeyring) Delete(string, string) error        { return nil }

// isolate points config, cache and keyring at throwaway locations.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(config.EnvConfigFile, filepath.Join(dir, "config.yaml"))
	t.Setenv(config.EnvTelemetryOptIn, "")
	t.Setenv(config.EnvLogFile, "")
	t.Cleanup(config.SetTokenStore(noKeyring{}))
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "version")
	if err != nil || !strings.HasPrefix(out, "Form Builder ") {
		t.Fatalf("version: %q, %v", out, err)
	}
}

func TestCatalogList(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	for _, want := range []string{"CATEGORY", "Most Used Components", "Text Field", "slider"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}

	out, _, err = run(t, "catalog", "list", "-o", "yaml")
	if err != nil || !strings.Contains(out, "categories:") {
		t.Fatalf("yaml output: %v\n%s", err, out)
	}

	if _, _, err := run(t, "catalog", "list", "-o", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCatalogValidate(t *testing.T) {
	dir := isolate(t)
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte(`categories:
  - name: Basics
    templates:
      - { id: b1, content: OK, type: button }
`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "catalog", "validate", good)
	if err != nil || !strings.Contains(out, "ok (1 categories") {
		t.Fatalf("validate good: %v\n%s", err, out)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("categories: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = run(t, "catalog", "validate", bad)
	if err == nil || !strings.Contains(out, "  - ") {
		t.Fatalf("validate bad: err %v\n%s", err, out)
	}
}

func TestReplay(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "session.fb")
	if err := os.WriteFile(src, []byte("canvas 600x400\ndrop 0\nselect component-1\ndrop 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "replay", src)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	for _, want := range []string{"Page 1", "component-1", "Text Field", "applied 3 step(s), ignored lines [4]", "pages=1 active=0 items=1 selected=component-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("replay output missing %q:\n%s", want, out)
		}
	}
}

func TestExplicitConfigStillSendsKeychainToken(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(config.SetTokenStore(fixedKeyring{token: "tok-123"}))

	var (
		mu    sync.Mutex
		auths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		auths = append(auths, r.Header.Get("Authorization"))
		mu.Unlock()
	}))
	defer srv.Close()

	cfgPath := filepath.Join(dir, "custom.yaml")
	yml := "general:\n  telemetry_opt_in: true\ntelemetry:\n  events_url: " + srv.URL + "\n"
	if err := os.WriteFile(cfgPath, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "session.fb")
	if err := os.WriteFile(src, []byte("drop 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "--config", cfgPath, "replay", src); err != nil {
		t.Fatalf("replay: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(auths) == 0 {
		t.Fatalf("no telemetry events were sent")
	}
	for _, a := range auths {
		if a != "Bearer tok-123" {
			t.Fatalf("Authorization = %q", a)
		}
	}
}

func TestReplayReportsParseErrors(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "broken.fb")
	if err := os.WriteFile(src, []byte("drop 0\nteleport 1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, errOut, err := run(t, "replay", src)
	if err == nil {
		t.Fatalf("expected parse failure")
	}
	if !strings.Contains(errOut, src+":2:1:") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestThumbs(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "thumbs")
	stdout, _, err := run(t, "thumbs", "--out", out, "--size", "100")
	if err != nil {
		t.Fatalf("thumbs: %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(out, "*.png"))
	if len(files) == 0 || !strings.Contains(stdout, "wrote ") {
		t.Fatalf("no thumbnails written: %s", stdout)
	}
	if _, err := os.Stat(filepath.Join(out, "most-used-components-00-input.png")); err != nil {
		t.Fatalf("expected named thumbnail: %v", err)
	}

	if _, _, err := run(t, "thumbs"); err == nil {
		t.Fatalf("expected error without --out")
	}
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvCanvasWidth, "1024")
	out, _, err := run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"# canvas.width overridden by GFB_CANVAS_WIDTH", "width: 1024", "# source: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestSlug(t *testing.T) {
	if got := slug("Most Used Components!"); got != "most-used-components" {
		t.Fatalf("slug = %q", got)
	}
}
