package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/seek/internal/config"
	"github.com/five82/seek/internal/prefs"
	"github.com/five82/seek/internal/preview"
	"github.com/five82/seek/internal/results"
	"github.com/five82/seek/internal/search"
	"github.com/five82/seek/internal/ui"
)

// Options configure the seek application. Zero values defer to the config
// file and the saved preferences.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/seek/prefs.toml
	LogFile    string        // overrides log_file from the config
	Tick       time.Duration // zero uses tick_ms from the config
	Hidden     bool          // search hidden files regardless of prefs
	NoPreview  bool          // start with the preview pane closed
	Query      string
	Globs      string
}

// Run boots the seek TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog, err := setupLogging(firstNonEmpty(opts.LogFile, cfg.LogFile))
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs := loadPrefs(opts.PrefsPath)

	managerCfg := managerConfig(cfg, userPrefs, opts)
	log.Printf("[app] starting: search=%v preview=%v hidden=%t preview_pane=%t",
		managerCfg.Search.Argv, managerCfg.Preview.Argv, managerCfg.ShowHidden, managerCfg.ShowPreview)

	manager := results.New(ctx, managerCfg)
	defer manager.Close()

	tick := cfg.Tick
	if opts.Tick > 0 {
		tick = opts.Tick
	}

	return ui.Run(ctx, ui.Options{
		Manager:   manager,
		Tick:      tick,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Query:     opts.Query,
		Globs:     opts.Globs,
	})
}

// managerConfig merges the config file, saved preferences and command line
// flags. Flags win over preferences, which win over the config file.
func managerConfig(cfg config.Config, p prefs.Prefs, opts Options) results.Config {
	showHidden := prefs.Resolve(p.ShowHidden, cfg.ShowHidden)
	if opts.Hidden {
		showHidden = true
	}
	showPreview := prefs.Resolve(p.ShowPreview, cfg.ShowPreview)
	if opts.NoPreview {
		showPreview = false
	}

	return results.Config{
		Search:      search.Command{Argv: cfg.SearchCommand},
		Preview:     preview.Command{Argv: cfg.PreviewCommand},
		Editor:      cfg.Editor,
		BatchSize:   cfg.BatchSize,
		ShowPreview: showPreview,
		ShowHidden:  showHidden,
		AutoSelect:  cfg.AutoSelect,
	}
}

// loadPrefs returns the saved preferences. A broken prefs file is logged and
// replaced by defaults; it is rewritten on the next toggle.
func loadPrefs(path string) prefs.Prefs {
	p, err := prefs.Load(path)
	if err != nil {
		log.Printf("[app] prefs ignored: %v", err)
	}
	return p
}

// setupLogging sends the standard logger to path. The terminal belongs to
// the UI, so without a path log output is discarded.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	f, err := tea.LogToFile(expanded, "seek")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
