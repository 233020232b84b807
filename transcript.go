package pardll

//
// Transcript writer
//

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// TranscriptWriter records a line of text per transmitted or received bit
// event, for post-hoc debugging of a run. It is entirely optional:
// attaching one to a [PhysicalLayer] touches no protocol state.
//
// Each endpoint may have at most one writer attached; entries are
// produced on a buffered channel and written by a single background
// goroutine until [TranscriptWriter.Close] is called.
//
// The zero value is invalid; use [NewTranscriptWriter].
type TranscriptWriter struct {
	cancel    context.CancelFunc
	closeOnce sync.Once
	joined    chan any
	logger    Logger
	entries   chan string
}

// transcriptBacklog bounds how many pending entries may queue before new
// ones are silently dropped rather than blocking the caller.
const transcriptBacklog = 4096

// NewTranscriptWriter creates a [TranscriptWriter] that appends lines to
// filename. It spawns a background goroutine; call
// [TranscriptWriter.Close] to join it.
func NewTranscriptWriter(filename string, logger Logger) *TranscriptWriter {
	ctx, cancel := context.WithCancel(context.Background())
	tw := &TranscriptWriter{
		cancel:  cancel,
		joined:  make(chan any),
		logger:  logger,
		entries: make(chan string, transcriptBacklog),
	}
	go tw.loop(ctx, filename)
	return tw
}

// Record enqueues one line describing an event. Non-blocking: if the
// backlog is full, the entry is dropped.
func (tw *TranscriptWriter) Record(format string, v ...any) {
	line := fmt.Sprintf(format, v...)
	select {
	case tw.entries <- line:
	default:
		// backlog full; drop the entry rather than block the caller
	}
}

// loop is the background goroutine that owns the open file.
func (tw *TranscriptWriter) loop(ctx context.Context, filename string) {
	defer close(tw.joined)

	filep, err := os.Create(filename)
	if err != nil {
		tw.logger.Warnf("pardll: TranscriptWriter: os.Create: %s", err.Error())
		return
	}
	defer func() {
		if err := filep.Close(); err != nil {
			tw.logger.Warnf("pardll: TranscriptWriter: filep.Close: %s", err.Error())
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line := <-tw.entries:
			if _, err := fmt.Fprintf(filep, "%s %s\n", time.Now().Format(time.RFC3339Nano), line); err != nil {
				tw.logger.Warnf("pardll: TranscriptWriter: write: %s", err.Error())
			}
		}
	}
}

// Close stops the background goroutine and waits for it to exit.
// Entries still queued when Close is called may be left unwritten.
// Safe to call more than once.
func (tw *TranscriptWriter) Close() error {
	tw.closeOnce.Do(func() {
		tw.cancel()
		tw.logger.Debugf("pardll: TranscriptWriter: awaiting background writer to finish")
		<-tw.joined
	})
	return nil
}
