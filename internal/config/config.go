package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything seek reads from its config file.
type Config struct {
	SearchCommand  []string
	PreviewCommand []string
	Editor         string
	Tick           time.Duration
	BatchSize      int
	ShowPreview    bool
	ShowHidden     bool
	AutoSelect     bool
	LogFile        string
}

const (
	defaultConfigPath = "~/.config/seek/config.toml"
	defaultTickMS     = 50
	defaultBatchSize  = 10
	defaultEditor     = "vi"
)

var (
	defaultSearchCommand  = []string{"rg"}
	defaultPreviewCommand = []string{"bat"}
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SearchCommand:  append([]string(nil), defaultSearchCommand...),
		PreviewCommand: append([]string(nil), defaultPreviewCommand...),
		Editor:         defaultEditorFromEnv(),
		Tick:           defaultTickMS * time.Millisecond,
		BatchSize:      defaultBatchSize,
		ShowPreview:    true,
		AutoSelect:     true,
	}
}

// Load locates and parses the seek config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SearchCommand  []string `toml:"search_command"`
		PreviewCommand []string `toml:"preview_command"`
		Editor         string   `toml:"editor"`
		TickMS         int      `toml:"tick_ms"`
		BatchSize      int      `toml:"batch_size"`
		ShowPreview    *bool    `toml:"show_preview"`
		ShowHidden     *bool    `toml:"show_hidden"`
		AutoSelect     *bool    `toml:"auto_select"`
		LogFile        string   `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if argv := cleanArgv(raw.SearchCommand); len(argv) > 0 {
		cfg.SearchCommand = argv
	}
	if argv := cleanArgv(raw.PreviewCommand); len(argv) > 0 {
		cfg.PreviewCommand = argv
	}
	if editor := strings.TrimSpace(raw.Editor); editor != "" {
		cfg.Editor = editor
	}
	if raw.TickMS > 0 {
		cfg.Tick = time.Duration(raw.TickMS) * time.Millisecond
	}
	if raw.BatchSize > 0 {
		cfg.BatchSize = raw.BatchSize
	}
	if raw.ShowPreview != nil {
		cfg.ShowPreview = *raw.ShowPreview
	}
	if raw.ShowHidden != nil {
		cfg.ShowHidden = *raw.ShowHidden
	}
	if raw.AutoSelect != nil {
		cfg.AutoSelect = *raw.AutoSelect
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	return cfg, nil
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// cleanArgv trims every element and drops empty ones.
func cleanArgv(argv []string) []string {
	var out []string
	for _, arg := range argv {
		if arg = strings.TrimSpace(arg); arg != "" {
			out = append(out, arg)
		}
	}
	return out
}

func defaultEditorFromEnv() string {
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	return defaultEditor
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
