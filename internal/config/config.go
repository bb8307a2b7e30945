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
	"runtime"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal, so older builds tolerate newer files.

type ToolbarConfig struct {
	// GutterLeft/GutterTop is the pixel offset kept between the anchor
	// point and the toolbar edge.
	GutterLeft float64 `yaml:"gutter_left"`
	GutterTop  float64 `yaml:"gutter_top"`
	// AnimationMs is the show transition duration. 0 disables the animation.
	AnimationMs int `yaml:"animation_ms"`
	// FitViewport constrains the toolbar to the visible pane width.
	FitViewport bool `yaml:"fit_viewport"`
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Toolbar       ToolbarConfig `yaml:"toolbar"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Toolbar:       ToolbarConfig{GutterLeft: 0, GutterTop: 10, AnimationMs: 150, FitViewport: true},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTelemetryOptIn = "IKB_TELEMETRY_OPT_IN"
	EnvGutterLeft     = "IKB_GUTTER_LEFT"
	EnvGutterTop      = "IKB_GUTTER_TOP"
	EnvAnimationMs    = "IKB_ANIMATION_MS"
	EnvFitViewport    = "IKB_FIT_VIEWPORT"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "IKB_LOG_LEVEL"
	EnvLogFormat = "IKB_LOG_FORMAT"
	EnvLogSource = "IKB_LOG_SOURCE"
	EnvLogFile   = "IKB_LOG_FILE"
)

// Service/keys for OS keyring. The telemetry upload token never touches disk.
const (
	keyringService = "Inkbar"
	keyringToken   = "telemetry_token"
)

// tokenStore abstracts keyring, so we can stub in tests.
var tokenStore TokenStore = &osKeyring{}

type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements TokenStore using the OS keyring via github.com/zalando/go-keyring.
type osKeyring struct{}

func (k *osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (k *osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (k *osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Inkbar")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Inkbar")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "inkbar")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads user config file (if present), applies defaults, and merges environment overrides.
// It also loads the telemetry token from keyring (not kept inside the struct; returned separately).
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	// token from keyring
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// Save writes the user config YAML and persists the token into OS keyring (if non-empty).
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return err
		}
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	// toolbar geometry: only non-zero file entries override the defaults
	if src.Toolbar.GutterLeft != 0 {
		dst.Toolbar.GutterLeft = src.Toolbar.GutterLeft
	}
	if src.Toolbar.GutterTop != 0 {
		dst.Toolbar.GutterTop = src.Toolbar.GutterTop
	}
	if src.Toolbar.AnimationMs != 0 {
		dst.Toolbar.AnimationMs = src.Toolbar.AnimationMs
	}
	dst.Toolbar.FitViewport = src.Toolbar.FitViewport
	// logging
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
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvGutterLeft)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Toolbar.GutterLeft = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvGutterTop)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Toolbar.GutterTop = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvAnimationMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Toolbar.AnimationMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvFitViewport)); v != "" {
		cfg.Toolbar.FitViewport = parseBool(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "toolbar.gutter_left":
		if os.Getenv(EnvGutterLeft) != "" {
			return EnvGutterLeft, true
		}
	case "toolbar.gutter_top":
		if os.Getenv(EnvGutterTop) != "" {
			return EnvGutterTop, true
		}
	case "toolbar.animation_ms":
		if os.Getenv(EnvAnimationMs) != "" {
			return EnvAnimationMs, true
		}
	case "toolbar.fit_viewport":
		if os.Getenv(EnvFitViewport) != "" {
			return EnvFitViewport, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
