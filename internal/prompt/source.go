// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt reads interactive input: single answers and sentinel-
// terminated file selections.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// ErrCancelled is returned by every read once the session is interrupted or
// input is exhausted.
var ErrCancelled = errors.New("cancelled")

// LineSource yields input lines one at a time. Next blocks until a line is
// available, the input ends, or ctx is done; the last two return
// ErrCancelled.
type LineSource interface {
	Next(ctx context.Context) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// ReaderSource reads lines from an io.Reader on a background goroutine so a
// blocked read can be abandoned when the context is cancelled.
type ReaderSource struct {
	lines <-chan lineResult
}

// NewReaderSource starts reading r. The goroutine exits at end of input.
// Lines have no length limit, so a long pasted path is delivered whole.
func NewReaderSource(r io.Reader) *ReaderSource {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(line, "\n")
				ch <- lineResult{line: strings.TrimSuffix(line, "\r")}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					ch <- lineResult{err: err}
				}
				return
			}
		}
	}()
	return &ReaderSource{lines: ch}
}

// Next returns the next line without its trailing newline.
func (s *ReaderSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ErrCancelled
	case res, ok := <-s.lines:
		if !ok {
			return "", ErrCancelled
		}
		if res.err != nil {
			return "", errors.Join(ErrCancelled, res.err)
		}
		return res.line, nil
	}
}

// LinesSource replays a fixed list of lines, then reports ErrCancelled.
type LinesSource struct {
	lines []string
}

// Lines returns a source that yields the given lines in order.
func Lines(lines ...string) *LinesSource {
	return &LinesSource{lines: lines}
}

// Next returns the next canned line.
func (s *LinesSource) Next(ctx context.Context) (string, error) {
	if ctx.Err() != nil || len(s.lines) == 0 {
		return "", ErrCancelled
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// Remaining reports how many canned lines have not been consumed.
func (s *LinesSource) Remaining() int {
	return len(s.lines)
}
