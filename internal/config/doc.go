// Package config loads seek's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/seek/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Default Values
//
//   - search_command: ["rg"]
//   - preview_command: ["bat"]
//   - editor: $EDITOR, or vi when unset
//   - tick_ms: 50
//   - batch_size: 10
//   - show_preview: true
//   - show_hidden: false
//   - auto_select: true
//   - log_file: empty, logging disabled
//
// # TOML Format
//
//	search_command = ["rg", "--smart-case"]
//	preview_command = ["bat", "--theme", "ansi"]
//	editor = "nvim"
//	tick_ms = 50
//	batch_size = 10
//	show_preview = true
//	show_hidden = false
//	auto_select = true
//	log_file = "~/.local/state/seek/seek.log"
//
// Command lists are the executable followed by leading arguments; seek
// appends its own arguments after them. editor is a shell expression and is
// run through sh -c. Tilde expansion is performed on log_file.
//
// The boolean fields are decoded through pointers so that an absent key
// keeps its default while an explicit false is honored.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, wrapped as "parse config: ..."
//
// Missing config files are NOT an error. seek works out of the box with rg
// and bat on PATH.
package config
