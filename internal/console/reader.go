package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type line struct {
	text string
	err  error
}

// LineReader reads lines in the background so a read can be abandoned when
// the user presses Ctrl-C.
type LineReader struct {
	lines      chan line
	interrupts <-chan os.Signal
}

// NewLineReader starts reading from in. Signals arriving on interrupts abort
// the read in progress; a nil channel disables that.
func NewLineReader(in io.Reader, interrupts <-chan os.Signal) *LineReader {
	r := &LineReader{lines: make(chan line), interrupts: interrupts}
	go r.scan(bufio.NewReader(in))
	return r
}

func (r *LineReader) scan(in *bufio.Reader) {
	for {
		text, err := in.ReadString('\n')
		if text != "" {
			r.lines <- line{text: strings.TrimRight(text, "\r\n")}
		}
		if err != nil {
			r.lines <- line{err: err}
			close(r.lines)
			return
		}
	}
}

// ReadLine blocks until a line is available. It returns io.EOF at the end
// of input and ErrInterrupted on an interrupt.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	case <-r.interrupts:
		return "", ErrInterrupted
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ReadBlock collects lines until an empty line or the end of input and joins
// them with newlines. It returns io.EOF only when nothing was read.
func (r *LineReader) ReadBlock(ctx context.Context) (string, error) {
	var lines []string
	for {
		text, err := r.ReadLine(ctx)
		if errors.Is(err, io.EOF) && len(lines) > 0 {
			return strings.Join(lines, "\n"), nil
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, text)
	}
}

// IsTerminal reports whether r is a terminal.
func IsTerminal(r any) bool {
	f, ok := r.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
