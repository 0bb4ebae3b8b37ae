// Package results coordinates the search and preview jobs behind the UI.
//
// A Manager holds the current search options, at most one running search
// job, at most one running preview job and the selection. Every method is
// called from the UI loop; nothing in the package takes a lock.
//
// # Ticks
//
// Editing the query, the glob field or the hidden toggle only marks the
// options dirty. The next Tick notices the mark and reruns: the old job is
// finalized (killed and reaped), the selection and preview are cleared and a
// new job is started unless the query is empty. Several edits between two
// ticks therefore cost a single spawn.
//
// A Tick that does not rerun consumes at most BatchSize lines from the
// running job, so a search producing thousands of lines never stalls the
// loop. When AutoSelect is set, the first record to arrive is selected.
//
// # Preview
//
// Changing the selection or toggling the pane cancels the running preview and,
// when the pane is on and the selected record names an existing file, starts
// a new one. Ticks poll it without blocking. Only the newest preview is ever
// shown; cancelled renderers are reaped in the background.
//
// # Editor
//
// OpenSelection returns an *exec.Cmd instead of running the editor, so the
// caller can release the terminal for the duration of the edit.
package results
