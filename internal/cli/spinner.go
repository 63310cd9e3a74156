package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows the current pipeline stage and the time spent in it until it
// is stopped or its context ends. It draws on stderr so piped output stays
// clean.
type Spinner struct {
	out      io.Writer
	interval time.Duration

	mu    sync.Mutex
	stage string
	since time.Time
	drawn int // width of the last line, for clearing

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped chan struct{}
}

// newSpinner creates a spinner for stage. It stops by itself when ctx ends.
func newSpinner(ctx context.Context, stage string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:      os.Stderr,
		interval: 80 * time.Millisecond,
		stage:    stage,
		since:    time.Now(),
		ctx:      ctx,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}
}

// Start begins drawing.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Stage switches to the next stage and restarts its timer.
func (s *Spinner) Stage(stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = stage
	s.since = time.Now()
}

// Stop clears the spinner line. It is safe to call more than once and
// without Start.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
}

// Fail stops the spinner and reports the stage that failed.
func (s *Spinner) Fail(msg string) {
	s.Stop()
	s.mu.Lock()
	stage := strings.TrimSuffix(s.stage, "...")
	s.mu.Unlock()
	printError("%s (%s)", msg, stage)
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := time.Since(s.since).Truncate(100 * time.Millisecond)
	text := fmt.Sprintf("%s %s", s.stage, elapsed)
	pad := max(s.drawn-len(text), 0)
	fmt.Fprintf(s.out, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(text), strings.Repeat(" ", pad))
	s.drawn = len(text)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.drawn+2))
		s.drawn = 0
	}
}
