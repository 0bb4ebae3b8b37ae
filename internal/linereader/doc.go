// Package linereader turns a subprocess output stream into a sequence of
// complete lines.
//
// # Overview
//
// Two delivery modes are provided:
//
//   - Lines: blocking iteration on the caller's goroutine
//   - Start: a dedicated producer goroutine feeding a buffered channel that
//     the consumer polls with TryNext without ever blocking
//
// The polling mode is what the search job uses from the UI loop. A poll has
// three outcomes:
//
//	Empty   no line queued yet, producer still running
//	Line    one complete line returned
//	Closed  producer finished and the channel is drained
//
// # Line Semantics
//
// Lines are split on '\n'. The terminator is removed, along with a preceding
// '\r'. A partial trailing line at EOF (no terminator) is discarded; a
// process killed mid-write therefore never yields a truncated record.
//
// # Goroutine Lifecycle
//
// Each Reader owns exactly one goroutine. It exits when:
//
//  1. the source reaches EOF
//  2. a read fails (the error is kept and exposed through Err)
//  3. the consumer calls Stop while the producer is waiting to send
//
// On exit the goroutine closes the line channel and then Done. Consumers
// never join the goroutine; they observe Closed from TryNext instead, so
// teardown does not block the UI.
//
// # Backpressure
//
// The channel is bounded (DefaultBuffer lines). When the consumer falls
// behind, the producer blocks on send, the pipe fills, and the subprocess
// itself blocks on write. Memory stays bounded regardless of producer speed.
package linereader
