// Package ui provides the terminal user interface for seek.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. The Model owns two text inputs (the search
// pattern and the glob list), a results pane and a preview pane. All search
// and preview work is delegated to a results.Manager, which the Model pumps
// from a periodic tick message. Nothing in the package blocks the event loop.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key dispatch and the Run function
//   - view.go: Header, results, preview, status bar and command bar rendering
//   - layout.go: Pane sizes for side-by-side and stacked layouts
//   - keys.go: Key bindings and their help text
//   - help.go: Full-screen key binding overlay
//   - theme.go: Color themes and derived lipgloss styles
//   - strings.go, style_helpers.go: Truncation, padding and box drawing
//
// # Event Flow
//
//  1. Run starts the program with the alternate screen
//  2. Every tick calls Manager.Tick, which reruns or drains the search
//  3. Typed keys go to the focused input; its value is pushed to the manager
//  4. Selection changes scroll the list and resync the preview viewport
//  5. Enter hands the editor command to tea.ExecProcess, which releases the
//     terminal until the editor exits
//
// # Key Bindings
//
// Command keys avoid printable characters since an input always has focus.
//
//   - Up/Down, Ctrl+K/Ctrl+J: Move the selection
//   - PgUp/PgDn, Ctrl+Home/Ctrl+End: Jump by a page or to either end
//   - Shift+Up/Down, Alt+Up/Down: Scroll the preview
//   - Enter: Open the selected match in $EDITOR
//   - Ctrl+Y: Copy path:line to the clipboard
//   - Tab: Switch between the pattern and glob inputs
//   - Esc: Clear the focused input
//   - Ctrl+H: Toggle hidden files
//   - Ctrl+P: Toggle the preview pane
//   - Ctrl+T: Cycle the color theme
//   - F1: Show all bindings
//   - Ctrl+C: Exit
package ui
