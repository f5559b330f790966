/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type memStore struct {
	m   map[string]string
	err error
}

func (s *memStore) Get(service, key string) (string, error) { return s.m[service+"/"+key], s.err }
func (s *memStore) Set(service, key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.m[service+"/"+key] = value
	return nil
}
func (s *memStore) Delete(service, key string) error {
	delete(s.m, service+"/"+key)
	return s.err
}

func isolate(t *testing.T) (string, *memStore) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigFile, path)
	for _, k := range Keys() {
		env, _ := EnvOverrideFor(k)
		if env != "" {
			t.Setenv(env, "")
		}
	}
	st := &memStore{m: map[string]string{}}
	t.Cleanup(SetTokenStore(st))
	return path, st
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	isolate(t)
	cfg, tok, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if tok != "" {
		t.Fatalf("unexpected token %q", tok)
	}
}

func TestLoadFileReadsKeychainToken(t *testing.T) {
	_, st := isolate(t)
	st.m[keyringService+"/"+keyringToken] = "tok-123"
	other := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(other, []byte("general:\n  theme: dark\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, tok, err := LoadFile(other)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tok != "tok-123" || cfg.General.Theme != "dark" {
		t.Fatalf("got theme %q token %q", cfg.General.Theme, tok)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path, st := isolate(t)
	cfg := Defaults()
	cfg.Canvas.Width = 800
	cfg.Canvas.SnapThreshold = 6
	cfg.Catalog.Path = "/etc/formbuilder/palette.yaml"
	cfg.Thumbnails.MaxEntries = 64
	if err := Save(cfg, "s3cret"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	got, tok, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if tok != "s3cret" {
		t.Fatalf("token = %q", tok)
	}
	if err := ClearToken(); err != nil || len(st.m) != 0 {
		t.Fatalf("ClearToken left %v (err %v)", st.m, err)
	}
}

func TestSaveSurfacesKeyringError(t *testing.T) {
	_, st := isolate(t)
	st.err = errors.New("locked")
	if err := Save(Defaults(), "tok"); err == nil {
		t.Fatalf("expected keyring error")
	}
	// a failing keychain does not block Load
	if _, _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path, _ := isolate(t)
	if err := os.WriteFile(path, []byte("canvas: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMergeKeepsDefaultsForUnsetFields(t *testing.T) {
	path, _ := isolate(t)
	yml := "canvas:\n  snap_threshold: 4\nlogging:\n  level: DEBUG\n  source: true\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	want.Canvas.SnapThreshold = 4
	want.Logging.Level = "debug"
	want.Logging.Source = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMinItemSizeCannotDropBelowFloor(t *testing.T) {
	path, _ := isolate(t)
	for _, tc := range []struct {
		yml  string
		want float64
	}{
		{"canvas:\n  min_item_size: 10\n", 50},
		{"canvas:\n  min_item_size: 80\n", 80},
	} {
		if err := os.WriteFile(path, []byte(tc.yml), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg, _, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Canvas.MinItemSize != tc.want {
			t.Fatalf("%q: min_item_size = %g, want %g", tc.yml, cfg.Canvas.MinItemSize, tc.want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTelemetryOptIn, "yes")
	t.Setenv(EnvCanvasWidth, "1024")
	t.Setenv(EnvCanvasHeight, "not-a-number")
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "X:/gfb.log")
	t.Setenv(EnvTelemetryEvents, "https://telemetry.example/events")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn || cfg.Canvas.Width != 1024 || cfg.Canvas.Height != 600 {
		t.Fatalf("general/canvas overrides wrong: %#v %#v", cfg.General, cfg.Canvas)
	}
	if cfg.Logging.Level != "error" || !cfg.Logging.Source || cfg.Logging.File != "X:/gfb.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	if cfg.Telemetry.EventsURL != "https://telemetry.example/events" {
		t.Fatalf("telemetry url = %q", cfg.Telemetry.EventsURL)
	}
	if env, ok := EnvOverrideFor("canvas.width"); !ok || env != EnvCanvasWidth {
		t.Fatalf("EnvOverrideFor(canvas.width) = %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("canvas.min_item_size"); ok {
		t.Fatalf("min_item_size has no env binding")
	}
}

func TestConfigPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigFile, "/tmp/custom.yaml")
	if p, err := ConfigPath(); err != nil || p != "/tmp/custom.yaml" {
		t.Fatalf("ConfigPath = %q %v", p, err)
	}
	t.Setenv(EnvConfigFile, "")
	p, err := ConfigPath()
	if err != nil || filepath.Base(p) != "config.yaml" {
		t.Fatalf("ConfigPath = %q %v", p, err)
	}
}
