package search

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"slices"
	"time"

	"github.com/five82/seek/internal/linereader"
)

// DefaultBinary is the search executable used when no command is configured.
const DefaultBinary = "rg"

// waitDelay bounds how long Finalize waits for pipes after the kill.
const waitDelay = 2 * time.Second

// Command names the search executable and any leading arguments.
type Command struct {
	Argv []string
}

func (c Command) argv() []string {
	if len(c.Argv) == 0 || c.Argv[0] == "" {
		return []string{DefaultBinary}
	}
	return c.Argv
}

// SpawnError reports that the search process could not be started.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Job owns one running search process and the records parsed from it.
// A Job is confined to a single goroutine; only its reader runs elsewhere.
type Job struct {
	opts    Options
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	reader  *linereader.Reader
	records []Record

	finished bool
	started  time.Time
}

// Start spawns the search for opts. On error no process is left running.
func Start(ctx context.Context, command Command, opts Options) (*Job, error) {
	argv := command.argv()
	args := append(slices.Clone(argv[1:]), BuildArgs(opts)...)

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, &SpawnError{Binary: argv[0], Err: err}
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, &SpawnError{Binary: argv[0], Err: err}
	}

	log.Printf("[search] started pid=%d query=%q hidden=%t globs=%q", cmd.Process.Pid, opts.Query, opts.ShowHidden, opts.Globs)

	return &Job{
		opts:    opts.Clone(),
		cmd:     cmd,
		cancel:  cancel,
		reader:  linereader.Start(stdout, linereader.DefaultBuffer),
		started: time.Now(),
	}, nil
}

// Options returns the options the job was started with.
func (j *Job) Options() Options {
	return j.opts.Clone()
}

// TryReadNext consumes at most one pending line without blocking. It reports
// whether a record was appended. When the producer has finished the process
// is reaped and the job becomes finished.
func (j *Job) TryReadNext() bool {
	if j.finished {
		return false
	}
	line, status := j.reader.TryNext()
	switch status {
	case linereader.Line:
		j.records = append(j.records, ParseLine(line))
		return true
	case linereader.Closed:
		j.Finalize()
	}
	return false
}

// Count returns the number of records parsed so far.
func (j *Job) Count() int {
	return len(j.records)
}

// Result returns the record at index, or false when it does not exist yet.
func (j *Job) Result(index int) (Record, bool) {
	if index < 0 || index >= len(j.records) {
		return Record{}, false
	}
	return j.records[index], true
}

// Records returns the records parsed so far. Callers must not modify the
// returned slice.
func (j *Job) Records() []Record {
	return j.records[:len(j.records):len(j.records)]
}

// Finished reports whether the job has been finalized, either because the
// producer ran to completion or because it was superseded.
func (j *Job) Finished() bool {
	return j.finished
}

// Exited reports whether the process has been reaped.
func (j *Job) Exited() bool {
	return j.cmd.ProcessState != nil
}

// Finalize stops reading, kills the process if it is still running and
// waits for it to exit. It is safe to call more than once.
func (j *Job) Finalize() {
	if j.finished {
		return
	}
	j.finished = true

	j.reader.Stop()
	j.cancel()
	err := j.cmd.Wait()
	log.Printf("[search] finished pid=%d query=%q records=%d elapsed=%s err=%v",
		j.cmd.Process.Pid, j.opts.Query, len(j.records), time.Since(j.started).Round(time.Millisecond), err)
}
