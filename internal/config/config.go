// Package config loads the finder's user configuration from a JSON
// file. Missing files and missing keys fall back to defaults; a
// malformed file is an error rather than a silent reset.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Default values applied when the file or a key is absent.
const (
	DefaultPrompt         = "> "
	DefaultLoadingMessage = "Loading..."
	DefaultLogLevel       = "info"
)

// Config is the resolved user configuration.
type Config struct {
	// Prompt is drawn before the query line.
	Prompt string

	// Height fixes the view height in rows. Zero defers to
	// HeightPercent or fullscreen.
	Height int

	// HeightPercent sizes the view relative to the terminal.
	HeightPercent int

	// ShowHelp and ShowStatus toggle the bottom chrome lines.
	ShowHelp   bool
	ShowStatus bool

	// LoadingMessage is shown while producers are still streaming.
	LoadingMessage string

	// AccentColor and CursorColor are hex colors overriding the theme.
	// Empty means keep the default.
	AccentColor string
	CursorColor string

	// LogFile enables file logging when non-empty. LogLevel is one of
	// debug, info, warn, error.
	LogFile  string
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Prompt:         DefaultPrompt,
		ShowHelp:       true,
		ShowStatus:     true,
		LoadingMessage: DefaultLoadingMessage,
		LogLevel:       DefaultLogLevel,
	}
}

// DefaultPath returns the standard config file location,
// $XDG_CONFIG_HOME/sift/config.json or ~/.config/sift/config.json.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sift", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sift", "config.json")
}

// Load reads the config file at path. A missing file yields the
// defaults; a present but invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return cfg, fmt.Errorf("parse config %s: invalid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	if v := doc.Get("prompt"); v.Exists() {
		cfg.Prompt = v.String()
	}
	if v := doc.Get("height"); v.Exists() {
		cfg.Height = int(v.Int())
	}
	if v := doc.Get("height_percentage"); v.Exists() {
		cfg.HeightPercent = int(v.Int())
	}
	if v := doc.Get("show_help"); v.Exists() {
		cfg.ShowHelp = v.Bool()
	}
	if v := doc.Get("show_status"); v.Exists() {
		cfg.ShowStatus = v.Bool()
	}
	if v := doc.Get("messages.loading"); v.Exists() {
		cfg.LoadingMessage = v.String()
	}
	if v := doc.Get("colors.accent"); v.Exists() {
		cfg.AccentColor = v.String()
	}
	if v := doc.Get("colors.cursor"); v.Exists() {
		cfg.CursorColor = v.String()
	}
	if v := doc.Get("log.file"); v.Exists() {
		cfg.LogFile = v.String()
	}
	if v := doc.Get("log.level"); v.Exists() {
		cfg.LogLevel = v.String()
	}

	return cfg, cfg.validate(path)
}

func (c Config) validate(path string) error {
	if c.Height < 0 {
		return fmt.Errorf("config %s: height must not be negative", path)
	}
	if c.HeightPercent < 0 || c.HeightPercent > 100 {
		return fmt.Errorf("config %s: height_percentage must be within 0-100", path)
	}
	return nil
}

// WriteDefault writes a starter config to path, creating parent
// directories. An existing file is left alone.
func WriteDefault(path string) error {
	if path == "" {
		return fmt.Errorf("write config: empty path")
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := Default()
	doc := "{}"
	var err error
	for _, kv := range []struct {
		key   string
		value any
	}{
		{"prompt", cfg.Prompt},
		{"height", 0},
		{"height_percentage", 0},
		{"show_help", cfg.ShowHelp},
		{"show_status", cfg.ShowStatus},
		{"messages.loading", cfg.LoadingMessage},
		{"colors.accent", ""},
		{"colors.cursor", ""},
		{"log.file", ""},
		{"log.level", cfg.LogLevel},
	} {
		doc, err = sjson.Set(doc, kv.key, kv.value)
		if err != nil {
			return fmt.Errorf("build default config: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
