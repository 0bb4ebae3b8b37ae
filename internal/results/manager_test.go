package results

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/five82/seek/internal/preview"
	"github.com/five82/seek/internal/proctest"
	"github.com/five82/seek/internal/search"
)

func TestHelperProcess(t *testing.T) { proctest.Run() }

// workspace creates files in a temporary directory and makes it the working
// directory, so relative paths reported by the fake search resolve.
func workspace(t *testing.T, names ...string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("one\ntwo\nthree\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	t.Chdir(dir)
}

func tickUntil(t *testing.T, m *Manager, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		if !m.Tick() {
			time.Sleep(time.Millisecond)
		}
	}
}

func newManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	m := New(context.Background(), cfg)
	t.Cleanup(m.Close)
	return m
}

func TestManager_SearchSelectPreview(t *testing.T) {
	workspace(t, "a.txt")
	logs := t.TempDir()
	searchLog := filepath.Join(logs, "search.log")
	previewLog := filepath.Join(logs, "preview.log")

	m := newManager(t, Config{
		Search:      search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a.txt:3:1:foo"}, ArgLog: searchLog})},
		Preview:     preview.Command{Argv: proctest.Install(t, "preview", proctest.Script{Lines: []string{"1 one", "2 two", "3 three"}, ArgLog: previewLog})},
		ShowPreview: true,
		AutoSelect:  true,
	})

	m.SetQuery("foo")
	if !m.Pending() {
		t.Fatalf("Pending = false after SetQuery")
	}
	tickUntil(t, m, "search and preview", func() bool {
		return m.Finished() && m.Preview().Status == PreviewShown
	})

	if idx, ok := m.Selection(); !ok || idx != 0 {
		t.Fatalf("Selection = %d, %t, want 0, true", idx, ok)
	}
	p := m.Preview()
	if p.Path != "a.txt" || p.Line != 3 || p.Artifact.Text != "1 one\n2 two\n3 three\n" {
		t.Fatalf("Preview = %#v", p)
	}
	if loc, ok := m.SelectedLocation(); !ok || loc != "a.txt:3" {
		t.Fatalf("SelectedLocation = %q, %t", loc, ok)
	}

	if got, want := proctest.ReadArgLog(t, searchLog), []string{"--column --color=always --no-hidden foo"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("search args = %q, want %q", got, want)
	}
	if got, want := proctest.ReadArgLog(t, previewLog), []string{"--color=always -n -H 3 a.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("preview args = %q, want %q", got, want)
	}
}

func TestManager_RapidEditsSpawnOnce(t *testing.T) {
	argLog := filepath.Join(t.TempDir(), "search.log")
	m := newManager(t, Config{
		Search: search.Command{Argv: proctest.Install(t, "search", proctest.Script{ArgLog: argLog})},
	})

	m.SetQuery("f")
	m.SetQuery("fo")
	m.SetGlobs("*.go; ;*.md")
	m.SetQuery("foo")
	tickUntil(t, m, "search to finish", m.Finished)

	got := proctest.ReadArgLog(t, argLog)
	want := []string{"--column --color=always --no-hidden --glob *.go --glob *.md foo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("search args = %q, want %q", got, want)
	}
}

func TestManager_UnchangedOptionsDoNotRerun(t *testing.T) {
	argLog := filepath.Join(t.TempDir(), "search.log")
	m := newManager(t, Config{
		Search: search.Command{Argv: proctest.Install(t, "search", proctest.Script{ArgLog: argLog})},
	})

	m.SetQuery("x")
	tickUntil(t, m, "search to finish", m.Finished)
	m.SetQuery("x")
	m.SetGlobs("")
	if m.Pending() {
		t.Fatalf("Pending = true after setting identical options")
	}
	m.ToggleHidden()
	if !m.Pending() {
		t.Fatalf("Pending = false after ToggleHidden")
	}
	m.ToggleHidden()
	if m.Pending() {
		t.Fatalf("Pending = true after the toggle was undone")
	}
	if m.Tick() {
		t.Fatalf("Tick reported a change with nothing to do")
	}

	if got := proctest.ReadArgLog(t, argLog); len(got) != 1 {
		t.Fatalf("spawns = %d (%q), want 1", len(got), got)
	}
}

func TestManager_SupersededJobIsReaped(t *testing.T) {
	m := newManager(t, Config{
		Search: search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a.txt:1:1:x"}, Hang: true})},
	})

	m.SetQuery("a")
	m.Tick()
	first := m.job
	if first == nil {
		t.Fatalf("no job after first tick")
	}

	m.ToggleHidden()
	m.Tick()
	if m.job == nil || m.job == first {
		t.Fatalf("job was not replaced")
	}
	if !first.Exited() {
		t.Fatalf("superseded job still running")
	}
	if !m.job.Options().ShowHidden {
		t.Fatalf("new job does not search hidden files")
	}

	current := m.job
	m.Close()
	if !current.Exited() {
		t.Fatalf("Close left the search running")
	}
}

func TestManager_EmptyQueryIsIdle(t *testing.T) {
	m := newManager(t, Config{
		Search: search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a.txt:1:1:x"}})},
	})

	m.SetQuery("")
	if m.Pending() {
		t.Fatalf("empty query on a fresh manager marked options dirty")
	}

	m.SetQuery("x")
	tickUntil(t, m, "results", func() bool { return m.Count() == 1 })
	m.SetQuery("")
	m.Tick()

	if m.Count() != 0 || m.Searching() || m.Finished() || m.Records() != nil {
		t.Fatalf("count=%d searching=%t finished=%t, want idle", m.Count(), m.Searching(), m.Finished())
	}
	if _, ok := m.Selection(); ok {
		t.Fatalf("selection survived an empty query")
	}
}

func TestManager_SelectionBounds(t *testing.T) {
	m := newManager(t, Config{
		Search:     search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a:1:1:x", "b:2:1:x", "c:3:1:x"}})},
		AutoSelect: true,
	})
	m.SetQuery("x")
	tickUntil(t, m, "search to finish", m.Finished)

	steps := []struct {
		name string
		move func()
		want int
	}{
		{"prev at top", m.SelectPrev, 0},
		{"next", m.SelectNext, 1},
		{"next", m.SelectNext, 2},
		{"next at bottom", m.SelectNext, 2},
		{"first", m.SelectFirst, 0},
		{"last", m.SelectLast, 2},
		{"page up", func() { m.Move(-10) }, 0},
		{"page down", func() { m.Move(10) }, 2},
	}
	for _, step := range steps {
		step.move()
		if idx, ok := m.Selection(); !ok || idx != step.want {
			t.Fatalf("%s: Selection = %d, %t, want %d", step.name, idx, ok, step.want)
		}
	}
	if rec, ok := m.Selected(); !ok || rec.Path != "c" {
		t.Fatalf("Selected = %#v, %t", rec, ok)
	}
}

func TestManager_NoAutoSelect(t *testing.T) {
	m := newManager(t, Config{
		Search: search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a:1:1:x", "b:2:1:x"}})},
	})

	m.SelectNext()
	if _, ok := m.Selection(); ok {
		t.Fatalf("selection made with no results")
	}

	m.SetQuery("x")
	tickUntil(t, m, "search to finish", m.Finished)
	if _, ok := m.Selection(); ok {
		t.Fatalf("selection made without AutoSelect")
	}
	m.SelectNext()
	if idx, ok := m.Selection(); !ok || idx != 0 {
		t.Fatalf("Selection = %d, %t, want 0", idx, ok)
	}
}

func TestManager_OnlyNewestPreviewShown(t *testing.T) {
	workspace(t, "a.txt", "b.txt")
	m := newManager(t, Config{
		Search:      search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a.txt:1:1:x", "b.txt:2:1:x"}})},
		Preview:     preview.Command{Argv: proctest.Install(t, "preview", proctest.Script{EchoArgs: true, DelayMS: 300})},
		ShowPreview: true,
		AutoSelect:  true,
	})

	m.SetQuery("x")
	tickUntil(t, m, "search to finish", m.Finished)
	if m.Preview().Status != PreviewLoading || m.Preview().Path != "a.txt" {
		t.Fatalf("Preview = %#v, want loading a.txt", m.Preview())
	}

	m.SelectNext()
	tickUntil(t, m, "preview", func() bool { return m.Preview().Status == PreviewShown })

	p := m.Preview()
	if p.Path != "b.txt" || p.Line != 2 {
		t.Fatalf("Preview target = %s:%d, want b.txt:2", p.Path, p.Line)
	}
	if !strings.HasPrefix(p.Artifact.Text, "--color=always -n -H 2 b.txt") {
		t.Fatalf("Artifact.Text = %q, want output rendered for b.txt", p.Artifact.Text)
	}
}

func TestManager_SlowStalePreviewIsIgnored(t *testing.T) {
	workspace(t, "a.txt", "b.txt")
	m := newManager(t, Config{
		Search: search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a.txt:1:1:x", "b.txt:2:1:x"}})},
		Preview: preview.Command{Argv: proctest.Install(t, "preview", proctest.Script{
			EchoArgs: true,
			Delays:   map[string]int{"a.txt": 600},
		})},
		ShowPreview: true,
		AutoSelect:  true,
	})

	m.SetQuery("x")
	tickUntil(t, m, "search to finish", m.Finished)
	if p := m.Preview(); p.Status != PreviewLoading || p.Path != "a.txt" {
		t.Fatalf("Preview = %#v, want loading a.txt", p)
	}

	// b.txt renders at once while a.txt is still sleeping.
	m.SelectNext()
	tickUntil(t, m, "preview", func() bool { return m.Preview().Status == PreviewShown })

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		m.Tick()
		p := m.Preview()
		if p.Status != PreviewShown || p.Path != "b.txt" || !strings.HasPrefix(p.Artifact.Text, "--color=always -n -H 2 b.txt") {
			t.Fatalf("Preview = %#v, want b.txt to stay shown", p)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestManager_TogglePreview(t *testing.T) {
	workspace(t, "a.txt")
	m := newManager(t, Config{
		Search:  search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a.txt:2:1:x"}})},
		Preview: preview.Command{Argv: proctest.Install(t, "preview", proctest.Script{Lines: []string{"rendered"}})},
		// Preview starts hidden.
		AutoSelect: true,
	})

	m.SetQuery("x")
	tickUntil(t, m, "search to finish", m.Finished)
	if m.Preview().Status != PreviewNone {
		t.Fatalf("Preview = %#v with the pane hidden", m.Preview())
	}

	m.TogglePreview()
	if !m.ShowPreview() || m.Preview().Status != PreviewLoading {
		t.Fatalf("after toggle on: show=%t status=%v", m.ShowPreview(), m.Preview().Status)
	}
	tickUntil(t, m, "preview", func() bool { return m.Preview().Status == PreviewShown })

	m.TogglePreview()
	if m.ShowPreview() || m.Preview().Status != PreviewNone {
		t.Fatalf("after toggle off: show=%t status=%v", m.ShowPreview(), m.Preview().Status)
	}
}

func TestManager_NoPreviewForUnresolvableRecords(t *testing.T) {
	workspace(t)
	previewLog := filepath.Join(t.TempDir(), "preview.log")
	m := newManager(t, Config{
		Search:      search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"just some text", "missing.txt:1:1:x"}})},
		Preview:     preview.Command{Argv: proctest.Install(t, "preview", proctest.Script{ArgLog: previewLog})},
		ShowPreview: true,
		AutoSelect:  true,
	})

	m.SetQuery("x")
	tickUntil(t, m, "search to finish", m.Finished)

	if m.Preview().Status != PreviewNone {
		t.Fatalf("Preview = %#v for a display-only record", m.Preview())
	}
	if _, ok := m.OpenSelection(); ok {
		t.Fatalf("OpenSelection ok for a display-only record")
	}
	if _, ok := m.SelectedLocation(); ok {
		t.Fatalf("SelectedLocation ok for a display-only record")
	}

	m.SelectNext()
	if m.Preview().Status != PreviewNone {
		t.Fatalf("Preview = %#v for a missing file", m.Preview())
	}
	if _, ok := m.OpenSelection(); !ok {
		t.Fatalf("OpenSelection not ok for an actionable record")
	}
	if got := proctest.ReadArgLog(t, previewLog); len(got) != 0 {
		t.Fatalf("preview spawned for %q", got)
	}
}

func TestManager_PreviewFailure(t *testing.T) {
	workspace(t, "a.txt")
	m := newManager(t, Config{
		Search:      search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: []string{"a.txt:1:1:x"}})},
		Preview:     preview.Command{Argv: proctest.Install(t, "preview", proctest.Script{Stderr: "bad theme\n", ExitCode: 1})},
		ShowPreview: true,
		AutoSelect:  true,
	})

	m.SetQuery("x")
	tickUntil(t, m, "preview failure", func() bool { return m.Preview().Status == PreviewFailed })
	if err := m.Preview().Err; err == nil || !strings.Contains(err.Error(), "bad theme") {
		t.Fatalf("Preview.Err = %v", err)
	}
}

func TestManager_SpawnErrorIsReported(t *testing.T) {
	m := newManager(t, Config{
		Search: search.Command{Argv: []string{filepath.Join(t.TempDir(), "no-rg")}},
	})

	m.SetQuery("x")
	if !m.Tick() {
		t.Fatalf("Tick = false on rerun")
	}
	var spawnErr *search.SpawnError
	if !errors.As(m.LastError(), &spawnErr) {
		t.Fatalf("LastError = %v, want *search.SpawnError", m.LastError())
	}
	if m.Searching() || m.Count() != 0 {
		t.Fatalf("searching=%t count=%d after spawn error", m.Searching(), m.Count())
	}
}

func TestManager_SpawnErrorRetriesAfterUndoneEdit(t *testing.T) {
	m := newManager(t, Config{
		Search: search.Command{Argv: []string{filepath.Join(t.TempDir(), "no-rg")}},
	})

	m.SetQuery("x")
	m.Tick()
	if m.LastError() == nil {
		t.Fatalf("LastError = nil, want a spawn error")
	}

	// Unchanged values are not edits and must not retry.
	m.SetQuery("x")
	if m.Pending() {
		t.Fatalf("Pending = true after setting the same query")
	}

	m.ToggleHidden()
	m.ToggleHidden()
	if !m.Pending() {
		t.Fatalf("Pending = false, want a retry after the failed start")
	}
	if !m.Tick() {
		t.Fatalf("Tick = false, want a rerun")
	}
	if m.Pending() || m.LastError() == nil {
		t.Fatalf("Pending = %t LastError = %v after retry", m.Pending(), m.LastError())
	}
}

func TestManager_TickDrainIsBounded(t *testing.T) {
	lines := make([]string, 95)
	for i := range lines {
		lines[i] = fmt.Sprintf("f.txt:%d:1:x", i+1)
	}
	m := newManager(t, Config{
		Search:    search.Command{Argv: proctest.Install(t, "search", proctest.Script{Lines: lines})},
		BatchSize: 10,
	})

	m.SetQuery("x")
	m.Tick()
	deadline := time.Now().Add(5 * time.Second)
	for !m.Finished() {
		if time.Now().After(deadline) {
			t.Fatalf("search did not finish, %d records", m.Count())
		}
		before := m.Count()
		m.Tick()
		if delta := m.Count() - before; delta > 10 {
			t.Fatalf("one tick consumed %d lines, want at most 10", delta)
		}
		time.Sleep(time.Millisecond)
	}
	if m.Count() != len(lines) {
		t.Fatalf("Count = %d, want %d", m.Count(), len(lines))
	}
	for i, rec := range m.Records() {
		if rec.Line != i+1 {
			t.Fatalf("record %d has line %d, out of order", i, rec.Line)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	m := New(context.Background(), Config{ShowHidden: true})
	if m.cfg.BatchSize != DefaultBatchSize {
		t.Fatalf("BatchSize = %d, want %d", m.cfg.BatchSize, DefaultBatchSize)
	}
	if !m.Options().ShowHidden {
		t.Fatalf("ShowHidden not carried into options")
	}
	if m.Tick() {
		t.Fatalf("Tick on an idle manager reported a change")
	}
}
