package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type capture struct {
	mu      sync.Mutex
	events  []map[string]any
	crashes [][]byte
	auth    []string
}

func (c *capture) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			t.Errorf("bad event json: %v", err)
		}
		c.mu.Lock()
		c.events = append(c.events, m)
		c.auth = append(c.auth, r.Header.Get("Authorization"))
		c.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/crash", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		c.mu.Lock()
		c.crashes = append(c.crashes, b)
		c.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (c *capture) snapshot() ([]map[string]any, [][]byte, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]map[string]any(nil), c.events...), append([][]byte(nil), c.crashes...), append([]string(nil), c.auth...)
}

func TestClient_EventAndUploadCrash(t *testing.T) {
	var rec capture
	srv := rec.server(t)

	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash", Timeout: 2 * time.Second, Token: "tok"})
	defer c.Close()
	if !c.Enabled() {
		t.Fatalf("expected client to be enabled")
	}

	c.Event("started", map[string]any{"k": "v"})
	c.Flush(context.Background())

	events, _, auth := rec.snapshot()
	if len(events) != 1 {
		t.Fatalf("events sent = %d, want 1", len(events))
	}
	m := events[0]
	if m["name"] != "started" || m["k"] != "v" {
		t.Fatalf("unexpected payload: %v", m)
	}
	if _, ok := m["ts"].(string); !ok {
		t.Fatalf("missing ts field")
	}
	if m["session"] != c.SessionID() || c.SessionID() == "" {
		t.Fatalf("session = %v, client session %q", m["session"], c.SessionID())
	}
	if auth[0] != "Bearer tok" {
		t.Fatalf("Authorization = %q", auth[0])
	}

	select {
	case <-c.UploadCrash([]byte("STACKTRACE")):
	case <-time.After(2 * time.Second):
		t.Fatalf("crash upload did not finish")
	}
	_, crashes, _ := rec.snapshot()
	if len(crashes) != 1 || string(crashes[0]) != "STACKTRACE" {
		t.Fatalf("crashes = %q", crashes)
	}
}

func TestClient_DisabledAndEmptyEventName(t *testing.T) {
	var rec capture
	srv := rec.server(t)

	c := New(Config{OptIn: false, EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash", Timeout: time.Second})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("expected disabled client")
	}
	c.Event("ignored", nil)
	<-c.UploadCrash([]byte("ignored"))

	c2 := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: time.Second})
	defer c2.Close()
	c2.Event("", nil)
	c2.Flush(context.Background())

	events, crashes, _ := rec.snapshot()
	if len(events) != 0 || len(crashes) != 0 {
		t.Fatalf("expected no requests, got %d events %d crashes", len(events), len(crashes))
	}
}

func TestClient_SendErrorsAreSwallowed(t *testing.T) {
	c := New(Config{
		OptIn:        true,
		EventsURL:    "http://127.0.0.1:1/events",
		CrashURL:     "http://127.0.0.1:1/crash",
		Timeout:      50 * time.Millisecond,
		DebugLogging: true,
	})
	defer c.Close()

	c.Event("err", map[string]any{"a": 1})
	c.Flush(context.Background())
	<-c.UploadCrash([]byte("oops"))
}

func TestFromEnvAndDefault(t *testing.T) {
	t.Setenv("GFB_TELEMETRY_OPT_IN", "true")
	t.Setenv("GFB_TELEMETRY_URL", "http://127.0.0.1:0")
	t.Setenv("GFB_CRASH_URL", "")
	t.Setenv("GFB_TELEMETRY_TIMEOUT_MS", "100")

	cfg := FromEnv()
	if !cfg.OptIn || cfg.EventsURL == "" || cfg.Timeout != 100*time.Millisecond {
		t.Fatalf("FromEnv did not parse correctly: %+v", cfg)
	}

	c := NewDefault(cfg)
	t.Cleanup(func() { NewDefault(Config{}).Close() })
	if !Enabled() || Default() != c {
		t.Fatalf("default client not installed")
	}
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{"1": true, " Yes ": true, "on": true, "TRUE": true, "0": false, "": false, "nope": false} {
		if got := parseBool(in); got != want {
			t.Errorf("parseBool(%q) = %v, want %v", in, got, want)
		}
	}
}
