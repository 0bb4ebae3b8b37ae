// Package app provides the orchestration layer for seek.
//
// # Overview
//
// This package wires together configuration, saved preferences, logging,
// the results manager and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Startup
//
//  1. Load ~/.config/seek/config.toml (missing file means defaults)
//  2. Load ~/.config/seek/prefs.toml (any error means defaults)
//  3. Point the standard logger at the log file, or discard it
//  4. Build a results.Manager from the merged settings
//  5. Start the TUI and block until the user exits or the context cancels
//
// # Precedence
//
// Toggles are resolved in this order, later wins:
//
//   - show_preview / show_hidden from config.toml
//   - the same keys from prefs.toml, written whenever the user toggles them
//   - the --no-preview and --hidden command line flags
//
// # Error Handling
//
// Only an unreadable or invalid config file and an unopenable log file are
// fatal. A search tool that cannot be spawned is reported inside the UI.
package app
