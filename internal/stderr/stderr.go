//go:build !windows

// Package stderr redirects file descriptor 2 into the log. C code linked into
// the binary (ALSA through the audio output, the AAC decoder) writes there
// directly and would otherwise draw over the TUI.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	forwarded  sync.WaitGroup
)

// Start redirects fd 2 and forwards every non-empty line to log at warn
// level. Call it before the audio output is initialized. On error fd 2 is
// left untouched and the program can carry on.
func Start(log zerolog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w

	log = log.With().Str("component", "stderr").Logger()
	forwarded.Add(1)
	go func() {
		defer forwarded.Done()
		forward(r, log)
	}()
	return nil
}

func forward(r io.Reader, log zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn().Msg(line)
		}
	}
}

// WriteOriginal writes to the original stderr, bypassing the redirect.
// Use it for fatal errors that must stay visible.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for pending lines to be logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead == nil {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	// The reader sees EOF once the last write end is closed
	pipeWrite.Close()
	forwarded.Wait()
	pipeRead.Close()
	pipeRead, pipeWrite = nil, nil
}
