package linereader

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"sync"
)

// Status reports the result of a non-blocking poll.
type Status int

const (
	// Empty means no line is queued yet but the producer is still running.
	Empty Status = iota
	// Line means one complete line was returned.
	Line
	// Closed means the producer finished and every queued line was consumed.
	Closed
)

func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case Line:
		return "line"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// DefaultBuffer is the number of lines queued before the producer blocks.
const DefaultBuffer = 256

// Reader streams complete lines from an io.Reader through a dedicated goroutine.
type Reader struct {
	lines chan []byte
	stop  chan struct{}
	done  chan struct{}

	stopOnce sync.Once
	err      error
}

// Start launches the producer goroutine for src. buffer bounds the number of
// lines held in the channel; values <= 0 use DefaultBuffer.
func Start(src io.Reader, buffer int) *Reader {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	r := &Reader{
		lines: make(chan []byte, buffer),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go r.run(src)
	return r
}

func (r *Reader) run(src io.Reader) {
	defer close(r.done)
	defer close(r.lines)

	br := bufio.NewReaderSize(src, 64*1024)
	for {
		line, err := readLine(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
			return
		}
		select {
		case r.lines <- line:
		case <-r.stop:
			return
		}
	}
}

// TryNext returns the next queued line without blocking.
func (r *Reader) TryNext() ([]byte, Status) {
	select {
	case line, ok := <-r.lines:
		if !ok {
			return nil, Closed
		}
		return line, Line
	default:
		return nil, Empty
	}
}

// Next blocks until a line is available. It returns false once the producer
// has finished and the channel is drained.
func (r *Reader) Next() ([]byte, bool) {
	line, ok := <-r.lines
	return line, ok
}

// Stop detaches the consumer. A producer blocked on a full channel exits
// without delivering further lines. Stop never waits for the goroutine.
func (r *Reader) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Done is closed once the producer goroutine has returned.
func (r *Reader) Done() <-chan struct{} {
	return r.done
}

// Err returns the read error that ended the stream, if it was not EOF.
// It is only meaningful after Done is closed.
func (r *Reader) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Lines iterates the complete lines of src on the calling goroutine.
func Lines(src io.Reader) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		br := bufio.NewReaderSize(src, 64*1024)
		for {
			line, err := readLine(br)
			if err != nil {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// readLine returns one line with its terminator removed. A trailing line
// without a terminator is dropped and reported as io.EOF.
func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	line = bytes.TrimSuffix(line[:len(line)-1], []byte{'\r'})
	return line, nil
}
