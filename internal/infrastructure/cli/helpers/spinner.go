package helpers

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner animates a progress line until stopped. The zero value is inert.
type Spinner struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartSpinner animates on w only when w is a terminal. Stop is always safe.
func StartSpinner(w io.Writer) *Spinner {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return &Spinner{}
	}
	return spin(w, 80*time.Millisecond)
}

func spin(w io.Writer, interval time.Duration) *Spinner {
	s := &Spinner{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(w, "\r%c Fetching forecast...", spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.stop:
				fmt.Fprint(w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Stop clears the line and waits for the animation to exit.
func (s *Spinner) Stop() {
	if s.stop == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}
