// Package search runs the line-oriented search backend (ripgrep by default)
// as a cancellable job and parses its output into records.
//
// # Invocation
//
// A job is spawned with:
//
//	rg --column --color=always --hidden|--no-hidden [--glob <g>]... <query>
//
// Globs come from the semicolon separated glob field (see ParseGlobs); each
// trimmed, non-empty segment becomes one --glob argument. The query is
// always the final positional argument. Stdout is piped, stderr discarded.
//
// # Output Format
//
// Each output line is expected as
//
//	path:line:column:content
//
// with ANSI styling permitted anywhere. ParseLine locates the first two ':'
// separators on the raw bytes (skipping over escape sequences), strips
// styling from the path and line slices independently and parses the line
// number. A line that fails any step still becomes a Record, displayed as-is
// but not actionable (it cannot be opened or previewed). Malformed output
// never aborts a job.
//
// # Job Lifecycle
//
//	Start ──> running ──TryReadNext (Closed)──> finished (reaped)
//	             │
//	             └──Finalize──> finished (killed, reaped)
//
// TryReadNext never blocks: it parses at most one queued line. Records are
// appended in producer emission order and never reordered. Finalize is
// idempotent; once it returns the process has exited and the job is never
// read from again.
//
// # Errors
//
// Start returns *SpawnError when the executable cannot be started or its
// stdout cannot be captured. Non-zero exit codes (rg exits 1 for "no
// matches") are logged and otherwise ignored.
package search
