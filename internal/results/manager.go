package results

import (
	"context"
	"fmt"
	"log"
	"os/exec"

	"github.com/five82/seek/internal/preview"
	"github.com/five82/seek/internal/search"
)

// DefaultBatchSize caps how many search lines one Tick consumes.
const DefaultBatchSize = 10

// Config configures a Manager.
type Config struct {
	Search      search.Command
	Preview     preview.Command
	Editor      string
	BatchSize   int
	ShowPreview bool
	ShowHidden  bool
	AutoSelect  bool
}

// PreviewStatus describes what the preview pane should show.
type PreviewStatus int

const (
	PreviewNone PreviewStatus = iota
	PreviewLoading
	PreviewShown
	PreviewFailed
)

// PreviewState is a read-only view of the current preview.
type PreviewState struct {
	Status   PreviewStatus
	Path     string
	Line     int
	Artifact preview.Artifact
	Err      error
}

// Manager owns the active search job, the active preview job and the
// selection. It must only be used from one goroutine (the UI loop).
type Manager struct {
	ctx context.Context
	cfg Config

	opts    search.Options
	applied search.Options
	dirty   bool
	failed  bool // the last run could not start a job
	job     *search.Job

	selection   int
	showPreview bool
	previewJob  *preview.Job
	previewView PreviewState

	lastErr error
}

// New creates an idle Manager. Jobs it spawns are killed when ctx is done.
func New(ctx context.Context, cfg Config) *Manager {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	opts := search.Options{ShowHidden: cfg.ShowHidden}
	return &Manager{
		ctx:         ctx,
		cfg:         cfg,
		opts:        opts,
		applied:     opts.Clone(),
		selection:   -1,
		showPreview: cfg.ShowPreview,
	}
}

// SetQuery replaces the search term.
func (m *Manager) SetQuery(text string) {
	next := m.opts.Clone()
	next.Query = text
	m.setOptions(next)
}

// SetGlobs replaces the glob filters from the semicolon separated field.
func (m *Manager) SetGlobs(text string) {
	next := m.opts.Clone()
	next.Globs = search.ParseGlobs(text)
	m.setOptions(next)
}

// ToggleHidden flips whether hidden files are searched.
func (m *Manager) ToggleHidden() {
	next := m.opts.Clone()
	next.ShowHidden = !next.ShowHidden
	m.setOptions(next)
}

// setOptions marks the options dirty when they differ from those of the last
// run, so an edit that is undone before the next Tick costs nothing. After a
// run that failed to start, any real edit retries.
func (m *Manager) setOptions(next search.Options) {
	if next.Equal(m.opts) {
		return
	}
	m.opts = next
	m.dirty = m.failed || !next.Equal(m.applied)
}

// TogglePreview enables or disables the preview pane, starting or
// discarding the preview for the current selection.
func (m *Manager) TogglePreview() {
	m.showPreview = !m.showPreview
	m.refreshPreview()
}

// SelectNext moves the selection down one result. It stops at the last
// result received so far.
func (m *Manager) SelectNext() { m.Move(1) }

// SelectPrev moves the selection up one result. It stops at the first.
func (m *Manager) SelectPrev() { m.Move(-1) }

// SelectFirst selects the first result.
func (m *Manager) SelectFirst() {
	if m.Count() > 0 {
		m.selectIndex(0)
	}
}

// SelectLast selects the last result received so far.
func (m *Manager) SelectLast() {
	if n := m.Count(); n > 0 {
		m.selectIndex(n - 1)
	}
}

// Move shifts the selection by delta, clamped to the known results. With no
// selection any move selects the first result.
func (m *Manager) Move(delta int) {
	n := m.Count()
	if n == 0 {
		return
	}
	if m.selection < 0 {
		m.selectIndex(0)
		return
	}
	m.selectIndex(min(max(m.selection+delta, 0), n-1))
}

func (m *Manager) selectIndex(index int) {
	if index == m.selection {
		return
	}
	m.selection = index
	m.refreshPreview()
}

// Tick advances the pipeline by a bounded amount of work and reports whether
// anything visible changed.
func (m *Manager) Tick() bool {
	if m.dirty {
		m.rerun()
		return true
	}

	changed := false
	if m.job != nil && !m.job.Finished() {
		for i := 0; i < m.cfg.BatchSize; i++ {
			if !m.job.TryReadNext() {
				break
			}
			changed = true
		}
		if m.job.Finished() {
			changed = true
		}
		if m.cfg.AutoSelect && m.selection < 0 && m.job.Count() > 0 {
			m.selectIndex(0)
		}
	}

	if m.pollPreview() {
		changed = true
	}
	return changed
}

func (m *Manager) rerun() {
	m.dirty = false
	m.failed = false
	m.applied = m.opts.Clone()
	if m.job != nil {
		m.job.Finalize()
		m.job = nil
	}
	m.selection = -1
	m.refreshPreview()
	m.lastErr = nil

	if m.opts.IsEmpty() {
		return
	}
	job, err := search.Start(m.ctx, m.cfg.Search, m.opts)
	if err != nil {
		log.Printf("[results] search not started: %v", err)
		m.lastErr = err
		m.failed = true
		return
	}
	m.job = job
}

// refreshPreview discards the current preview and starts one for the
// selection when the pane is enabled and the target is a real file.
func (m *Manager) refreshPreview() {
	if m.previewJob != nil {
		m.previewJob.Cancel()
		m.previewJob = nil
	}
	m.previewView = PreviewState{}

	if !m.showPreview {
		return
	}
	rec, ok := m.Selected()
	if !ok {
		return
	}
	path, line, ok := rec.Location()
	if !ok || !preview.Resolvable(path) {
		return
	}

	m.previewView = PreviewState{Status: PreviewLoading, Path: path, Line: line}
	job, err := preview.Start(m.ctx, m.cfg.Preview, path, line)
	if err != nil {
		log.Printf("[results] preview not started: %v", err)
		m.previewView.Status = PreviewFailed
		m.previewView.Err = err
		return
	}
	m.previewJob = job
}

func (m *Manager) pollPreview() bool {
	if m.previewJob == nil {
		return false
	}
	out := m.previewJob.TryRecv()
	switch out.Status {
	case preview.Ready:
		m.previewView.Status = PreviewShown
		m.previewView.Artifact = out.Artifact
	case preview.Failed:
		m.previewView.Status = PreviewFailed
		m.previewView.Err = out.Err
	default:
		return false
	}
	m.previewJob = nil
	return true
}

// OpenSelection returns the editor command for the selected result. The
// caller runs it in the foreground and restores the terminal afterwards.
// It returns false when nothing openable is selected.
func (m *Manager) OpenSelection() (*exec.Cmd, bool) {
	rec, ok := m.Selected()
	if !ok {
		return nil, false
	}
	path, line, ok := rec.Location()
	if !ok {
		return nil, false
	}
	return EditorCommand(m.cfg.Editor, path, line), true
}

// SelectedLocation returns "path:line" for the selected result.
func (m *Manager) SelectedLocation() (string, bool) {
	rec, ok := m.Selected()
	if !ok {
		return "", false
	}
	path, line, ok := rec.Location()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s:%d", path, line), true
}

// Close finalizes the search job and abandons any preview.
func (m *Manager) Close() {
	if m.job != nil {
		m.job.Finalize()
		m.job = nil
	}
	if m.previewJob != nil {
		m.previewJob.Cancel()
		m.previewJob = nil
	}
}

// Records returns the results received so far. Callers must not modify it.
func (m *Manager) Records() []search.Record {
	if m.job == nil {
		return nil
	}
	return m.job.Records()
}

// Count returns the number of results received so far.
func (m *Manager) Count() int {
	if m.job == nil {
		return 0
	}
	return m.job.Count()
}

// Selection returns the selected index.
func (m *Manager) Selection() (int, bool) {
	if m.selection < 0 {
		return 0, false
	}
	return m.selection, true
}

// Selected returns the selected record.
func (m *Manager) Selected() (search.Record, bool) {
	if m.job == nil || m.selection < 0 {
		return search.Record{}, false
	}
	return m.job.Result(m.selection)
}

// Preview returns the current preview state.
func (m *Manager) Preview() PreviewState {
	return m.previewView
}

// Options returns the options the next (or current) search runs with.
func (m *Manager) Options() search.Options {
	return m.opts.Clone()
}

// ShowPreview reports whether the preview pane is enabled.
func (m *Manager) ShowPreview() bool {
	return m.showPreview
}

// Pending reports whether an option change is waiting for the next Tick.
func (m *Manager) Pending() bool {
	return m.dirty
}

// Searching reports whether a search process is still producing results.
func (m *Manager) Searching() bool {
	return m.job != nil && !m.job.Finished()
}

// Finished reports whether the current search ran to completion.
func (m *Manager) Finished() bool {
	return m.job != nil && m.job.Finished()
}

// LastError returns the error from the most recent search start, if any.
func (m *Manager) LastError() error {
	return m.lastErr
}
