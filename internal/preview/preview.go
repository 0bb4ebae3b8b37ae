package preview

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultBinary is the preview renderer used when no command is configured.
const DefaultBinary = "bat"

const waitDelay = 2 * time.Second

// Command names the preview executable and any leading arguments.
type Command struct {
	Argv []string
}

func (c Command) argv() []string {
	if len(c.Argv) == 0 || c.Argv[0] == "" {
		return []string{DefaultBinary}
	}
	return c.Argv
}

// BuildArgs returns the renderer arguments for path, highlighting line when
// it is known (line > 0).
func BuildArgs(path string, line int) []string {
	args := []string{"--color=always", "-n"}
	if line > 0 {
		args = append(args, "-H", strconv.Itoa(line))
	}
	return append(args, path)
}

// Resolvable reports whether path names an existing regular file.
func Resolvable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Artifact is the rendered preview for one target line.
type Artifact struct {
	Text string
	Line int
}

// Offset returns the vertical scroll that centers the target line in a
// viewport of the given height, clamped at the top.
func (a Artifact) Offset(height int) int {
	return max(0, a.Line-height/2)
}

// Status is the state of a preview job as seen by a poll.
type Status int

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of polling a Job.
type Outcome struct {
	Status   Status
	Artifact Artifact
	Err      error
}

// Job renders one file region in the background.
type Job struct {
	path   string
	line   int
	cancel context.CancelFunc
	result chan Outcome

	outcome Outcome
}

// Start spawns the renderer for path. The output is read to completion on a
// separate goroutine; poll it with TryRecv.
func Start(ctx context.Context, command Command, path string, line int) (*Job, error) {
	argv := command.argv()
	args := append(slices.Clone(argv[1:]), BuildArgs(path, line)...)

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	job := &Job{
		path:   path,
		line:   line,
		cancel: cancel,
		result: make(chan Outcome, 1),
	}
	go job.wait(ctx, cmd, &stdout, &stderr)
	return job, nil
}

// wait reaps the process and publishes exactly one outcome. The channel has
// room for it, so a job that was abandoned never blocks this goroutine.
func (j *Job) wait(ctx context.Context, cmd *exec.Cmd, stdout, stderr *bytes.Buffer) {
	err := cmd.Wait()
	if ctx.Err() != nil {
		log.Printf("[preview] cancelled %s:%d", j.path, j.line)
		j.result <- Outcome{Status: Failed, Err: context.Canceled}
		return
	}
	if err != nil {
		j.result <- Outcome{Status: Failed, Err: processError(err, stderr)}
		return
	}
	j.result <- Outcome{Status: Ready, Artifact: Artifact{Text: stdout.String(), Line: j.line}}
}

func processError(err error, stderr *bytes.Buffer) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return err
	}
	if msg := firstLine(stderr); msg != "" {
		return fmt.Errorf("%s (exit %d)", msg, exitErr.ExitCode())
	}
	return fmt.Errorf("exit status %d", exitErr.ExitCode())
}

func firstLine(buf *bytes.Buffer) string {
	scanner := bufio.NewScanner(io.LimitReader(buf, 4096))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}

// TryRecv polls for completion without blocking. Once a Ready or Failed
// outcome has been observed it is returned on every later call.
func (j *Job) TryRecv() Outcome {
	if j.outcome.Status != Pending {
		return j.outcome
	}
	select {
	case out := <-j.result:
		j.outcome = out
		j.cancel()
	default:
	}
	return j.outcome
}

// Cancel kills the renderer and returns without waiting; the process is
// reaped by the job's goroutine.
func (j *Job) Cancel() {
	j.cancel()
}
