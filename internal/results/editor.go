package results

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultEditor is the shell expression used when no editor is configured.
const DefaultEditor = "${EDITOR:-vi}"

// EditorCommand builds the shell command that opens path at line. editor is
// a shell expression, so values such as "code -g" or "$VISUAL" work; the path
// is quoted and never interpreted by the shell. A line below 1 opens the file
// at the editor's default position.
func EditorCommand(editor, path string, line int) *exec.Cmd {
	if strings.TrimSpace(editor) == "" {
		editor = DefaultEditor
	}
	script := editor
	if line > 0 {
		script += fmt.Sprintf(" +%d", line)
	}
	script += " " + shellQuote(path)
	return exec.Command("sh", "-c", script)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
