/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: a YAML file in the user config
// directory merged over Defaults, then GFB_* environment overrides. The
// telemetry token never touches the file; it lives in the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"formbuilder/internal/domain"
)

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
}

type CanvasConfig struct {
	// Width and Height of the design surface in pixels; 0 follows the window.
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	MinItemSize   float64 `yaml:"min_item_size"`
	SnapThreshold float64 `yaml:"snap_threshold"` // 0 disables snapping
}

type CatalogConfig struct {
	Path            string `yaml:"path"` // empty uses the built-in palette
	DefaultCategory string `yaml:"default_category"`
}

type ThumbnailsConfig struct {
	CacheDir   string `yaml:"cache_dir"`
	Size       int    `yaml:"size"` // width; height is half
	MaxEntries int    `yaml:"max_entries"`
	Font       string `yaml:"font"` // optional TTF/OTF for labels
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type TelemetryConfig struct {
	EventsURL string `yaml:"events_url"`
	CrashURL  string `yaml:"crash_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// AppConfig is the user-editable configuration.
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	General       GeneralConfig    `yaml:"general"`
	Canvas        CanvasConfig     `yaml:"canvas"`
	Catalog       CatalogConfig    `yaml:"catalog"`
	Thumbnails    ThumbnailsConfig `yaml:"thumbnails"`
	Logging       LoggingConfig    `yaml:"logging"`
	Telemetry     TelemetryConfig  `yaml:"telemetry"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Canvas:        CanvasConfig{Width: 0, Height: 600, MinItemSize: 50, SnapThreshold: 0},
		Catalog:       CatalogConfig{DefaultCategory: "Most Used Components"},
		Thumbnails:    ThumbnailsConfig{Size: 160, MaxEntries: 512},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Telemetry:     TelemetryConfig{TimeoutMs: 3000},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile      = "GFB_CONFIG"
	EnvTelemetryOptIn  = "GFB_TELEMETRY_OPT_IN"
	EnvTheme           = "GFB_THEME"
	EnvCanvasWidth     = "GFB_CANVAS_WIDTH"
	EnvCanvasHeight    = "GFB_CANVAS_HEIGHT"
	EnvSnapThreshold   = "GFB_SNAP_THRESHOLD"
	EnvCatalogPath     = "GFB_CATALOG"
	EnvThumbCacheDir   = "GFB_THUMB_CACHE_DIR"
	EnvLogLevel        = "GFB_LOG_LEVEL"
	EnvLogFormat       = "GFB_LOG_FORMAT"
	EnvLogSource       = "GFB_LOG_SOURCE"
	EnvLogFile         = "GFB_LOG_FILE"
	EnvTelemetryEvents = "GFB_TELEMETRY_URL"
	EnvTelemetryCrash  = "GFB_CRASH_URL"
)

type envBinding struct {
	key   string // dotted yaml path
	env   string
	apply func(cfg *AppConfig, v string)
}

var envBindings = []envBinding{
	{"general.telemetry_opt_in", EnvTelemetryOptIn, func(c *AppConfig, v string) { c.General.TelemetryOptIn = truthy(v) }},
	{"general.theme", EnvTheme, func(c *AppConfig, v string) { c.General.Theme = strings.ToLower(v) }},
	{"canvas.width", EnvCanvasWidth, func(c *AppConfig, v string) { setFloat(&c.Canvas.Width, v) }},
	{"canvas.height", EnvCanvasHeight, func(c *AppConfig, v string) { setFloat(&c.Canvas.Height, v) }},
	{"canvas.snap_threshold", EnvSnapThreshold, func(c *AppConfig, v string) { setFloat(&c.Canvas.SnapThreshold, v) }},
	{"catalog.path", EnvCatalogPath, func(c *AppConfig, v string) { c.Catalog.Path = v }},
	{"thumbnails.cache_dir", EnvThumbCacheDir, func(c *AppConfig, v string) { c.Thumbnails.CacheDir = v }},
	{"logging.level", EnvLogLevel, func(c *AppConfig, v string) { c.Logging.Level = strings.ToLower(v) }},
	{"logging.format", EnvLogFormat, func(c *AppConfig, v string) { c.Logging.Format = strings.ToLower(v) }},
	{"logging.source", EnvLogSource, func(c *AppConfig, v string) { c.Logging.Source = truthy(v) }},
	{"logging.file", EnvLogFile, func(c *AppConfig, v string) { c.Logging.File = v }},
	{"telemetry.events_url", EnvTelemetryEvents, func(c *AppConfig, v string) { c.Telemetry.EventsURL = v }},
	{"telemetry.crash_url", EnvTelemetryCrash, func(c *AppConfig, v string) { c.Telemetry.CrashURL = v }},
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func setFloat(dst *float64, v string) {
	if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
		*dst = n
	}
}

// Service/keys for OS keyring.
const (
	keyringService = "FormBuilder"
	keyringToken   = "telemetry_token"
)

// TokenStore abstracts the keyring so tests can stub it.
type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements TokenStore using the OS keyring via github.com/zalando/go-keyring.
type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) {
	v, err := keyring.Get(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (osKeyring) Set(service, key, value string) error { return keyring.Set(service, key, value) }

func (osKeyring) Delete(service, key string) error {
	if err := keyring.Delete(service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

var tokenStore TokenStore = osKeyring{}

// SetTokenStore swaps the token backend and returns a func restoring the previous one.
func SetTokenStore(ts TokenStore) (restore func()) {
	prev := tokenStore
	tokenStore = ts
	return func() { tokenStore = prev }
}

// ConfigPath returns the per-user config file path. GFB_CONFIG overrides it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "FormBuilder")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "FormBuilder")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "formbuilder")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "formbuilder")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present) over the defaults and applies
// environment overrides. The telemetry token is read from the keychain and
// returned separately. A keychain failure is not fatal.
func Load() (AppConfig, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), "", err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit config file. The token still comes from the keychain.
func LoadFile(path string) (AppConfig, string, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return cfg, "", err
	}
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// LoadFrom reads one config file. A missing file yields the defaults.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML and persists the token into the OS keyring (if non-empty).
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
	}
	return nil
}

// ClearToken removes the telemetry token from the keychain.
func ClearToken() error { return tokenStore.Delete(keyringService, keyringToken) }

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn

	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	// the item floor can be raised, never lowered
	if src.Canvas.MinItemSize > 0 {
		dst.Canvas.MinItemSize = max(domain.MinItemSize, src.Canvas.MinItemSize)
	}
	if src.Canvas.SnapThreshold > 0 {
		dst.Canvas.SnapThreshold = src.Canvas.SnapThreshold
	}

	if p := strings.TrimSpace(src.Catalog.Path); p != "" {
		dst.Catalog.Path = p
	}
	if c := strings.TrimSpace(src.Catalog.DefaultCategory); c != "" {
		dst.Catalog.DefaultCategory = c
	}

	if d := strings.TrimSpace(src.Thumbnails.CacheDir); d != "" {
		dst.Thumbnails.CacheDir = d
	}
	if src.Thumbnails.Size > 0 {
		dst.Thumbnails.Size = src.Thumbnails.Size
	}
	if src.Thumbnails.MaxEntries > 0 {
		dst.Thumbnails.MaxEntries = src.Thumbnails.MaxEntries
	}
	if f := strings.TrimSpace(src.Thumbnails.Font); f != "" {
		dst.Thumbnails.Font = f
	}

	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}

	if u := strings.TrimSpace(src.Telemetry.EventsURL); u != "" {
		dst.Telemetry.EventsURL = u
	}
	if u := strings.TrimSpace(src.Telemetry.CrashURL); u != "" {
		dst.Telemetry.CrashURL = u
	}
	if src.Telemetry.TimeoutMs > 0 {
		dst.Telemetry.TimeoutMs = src.Telemetry.TimeoutMs
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	for _, b := range envBindings {
		if v := strings.TrimSpace(os.Getenv(b.env)); v != "" {
			b.apply(cfg, v)
		}
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	for _, b := range envBindings {
		if b.key == key && strings.TrimSpace(os.Getenv(b.env)) != "" {
			return b.env, true
		}
	}
	return "", false
}

// Keys lists every dotted key that can be overridden from the environment.
func Keys() []string {
	out := make([]string, len(envBindings))
	for i, b := range envBindings {
		out[i] = b.key
	}
	return out
}
