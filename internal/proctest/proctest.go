// Package proctest re-executes the running test binary as a scripted stand-in
// for the external search and preview programs.
//
// A package using it declares
//
//	func TestHelperProcess(t *testing.T) { proctest.Run() }
//
// and passes the argv returned by Install as the command to spawn. The child
// prints the scripted lines, optionally records its arguments to a log file
// and exits (or hangs until killed).
package proctest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	envEnabled = "SEEK_PROCTEST"
	envPrefix  = "SEEK_PROCTEST_"
)

// Script describes how a fake process behaves.
type Script struct {
	Lines    []string       `toml:"lines"`
	EchoArgs bool           `toml:"echo_args"` // print the received args as the first line
	Partial  string         `toml:"partial"`   // written after Lines without a newline
	Stderr   string         `toml:"stderr"`    // written to stderr before exiting
	ExitCode int            `toml:"exit_code"` // used when Hang is false
	Hang     bool           `toml:"hang"`      // block until killed after writing
	DelayMS  int            `toml:"delay_ms"`  // sleep before writing anything
	Delays   map[string]int `toml:"delays"`    // DelayMS per last argument
	ArgLog   string         `toml:"arg_log"`   // file receiving one line of args per run
}

// Install registers script for role in the environment of t and returns the
// argv that spawns it.
func Install(t testing.TB, role string, script Script) []string {
	t.Helper()
	encoded, err := toml.Marshal(script)
	if err != nil {
		t.Fatalf("proctest: marshal script: %v", err)
	}
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("proctest: locate test binary: %v", err)
	}
	t.Setenv(envEnabled, "1")
	t.Setenv(envPrefix+strings.ToUpper(role), string(encoded))
	return []string{exe, "-test.run=^TestHelperProcess$", "--", role}
}

// ReadArgLog returns the argument lines recorded at path, one per spawn.
func ReadArgLog(t testing.TB, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("proctest: open arg log: %v", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("proctest: read arg log: %v", err)
	}
	return lines
}

// Run executes the scripted behavior when the binary was started by Install.
// It returns immediately in the normal test process.
func Run() {
	if os.Getenv(envEnabled) != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "proctest: missing role")
		os.Exit(2)
	}
	role, rest := args[0], args[1:]

	var script Script
	if err := toml.Unmarshal([]byte(os.Getenv(envPrefix+strings.ToUpper(role))), &script); err != nil {
		fmt.Fprintf(os.Stderr, "proctest: decode script: %v\n", err)
		os.Exit(2)
	}

	if script.ArgLog != "" {
		appendLine(script.ArgLog, strings.Join(rest, " "))
	}
	delay := script.DelayMS
	if len(rest) > 0 {
		if d, ok := script.Delays[rest[len(rest)-1]]; ok {
			delay = d
		}
	}
	if delay > 0 {
		time.Sleep(time.Duration(delay) * time.Millisecond)
	}

	out := bufio.NewWriter(os.Stdout)
	if script.EchoArgs {
		fmt.Fprintln(out, strings.Join(rest, " "))
	}
	for _, line := range script.Lines {
		fmt.Fprintln(out, line)
	}
	if script.Partial != "" {
		fmt.Fprint(out, script.Partial)
	}
	_ = out.Flush()

	if script.Stderr != "" {
		fmt.Fprint(os.Stderr, script.Stderr)
	}
	if script.Hang {
		time.Sleep(time.Hour)
	}
	os.Exit(script.ExitCode)
}

func appendLine(path, line string) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = fmt.Fprintln(file, line)
}
