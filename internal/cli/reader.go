package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because its
// context ended.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// NonBlockingReader reads lines from an input that may never answer, such as
// a terminal, without tying the caller to it. One goroutine per reader feeds
// lines in order, so a cancelled read never loses the line that arrives
// after it.
type NonBlockingReader struct {
	src   *bufio.Reader
	lines chan line
	start sync.Once
}

// NewNonBlockingReader wraps r. Reading starts on the first ReadLine.
func NewNonBlockingReader(r io.Reader) *NonBlockingReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &NonBlockingReader{
		src:   bufio.NewReader(r),
		lines: make(chan line),
	}
}

func (r *NonBlockingReader) pump() {
	defer close(r.lines)
	for {
		text, err := r.src.ReadString('\n')
		if text != "" {
			r.lines <- line{text: text}
		}
		if err != nil {
			r.lines <- line{err: err}
			return
		}
	}
}

// ReadLine returns the next line with surrounding whitespace removed. A final
// line without a newline is returned before io.EOF.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// Confirm asks a yes/no question on w and reads the answer from r. Anything
// other than "y" or "yes" is a no, including end of input.
func Confirm(ctx context.Context, r *NonBlockingReader, w io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprint(w, FormatPrompt(question+" [y/N]")); err != nil {
		return false, err
	}

	answer, err := r.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
