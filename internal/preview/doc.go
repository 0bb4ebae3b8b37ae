// Package preview renders the region of a file around a search hit with an
// external highlighter (bat by default) in the background.
//
// The renderer is invoked as
//
//	bat --color=always -n [-H <line>] <path>
//
// and its whole output is collected before it is useful, so a Job does a
// single read-to-completion instead of streaming lines. The UI loop polls
// TryRecv each tick: Pending until the process exits, then Ready with an
// Artifact, or Failed with an error built from the exit status and the first
// stderr line.
//
// Cancel kills the renderer and returns immediately. The process is reaped
// asynchronously by the job's goroutine, whose single send lands in a
// buffered channel nobody reads again; an abandoned job's output is never
// observed.
//
// Artifact.Offset centers the target line in a viewport: max(0, line-h/2).
package preview
