// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/potentia/internal/resolve"
)

// doneSentinel ends a file selection.
const doneSentinel = "done"

// Prompter writes prompts to out and reads answers from src.
type Prompter struct {
	src      LineSource
	out      io.Writer
	resolver *resolve.Resolver
}

// New returns a Prompter. resolver is used by Path and Collect.
func New(src LineSource, out io.Writer, resolver *resolve.Resolver) *Prompter {
	return &Prompter{src: src, out: out, resolver: resolver}
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.src.Next(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Path asks for a single file and resolves it. ok is false when the answer
// does not identify an existing file.
func (p *Prompter) Path(ctx context.Context, label string) (path string, ok bool, err error) {
	answer, err := p.Ask(ctx, label)
	if err != nil {
		return "", false, err
	}
	path, ok = p.resolver.Resolve(answer)
	return path, ok, nil
}

// Collect reads one path per line until "done" (any case) and returns the
// resolved paths in entry order. Lines that do not resolve to an existing
// file of the given kind are rejected with a notice and collection continues.
func (p *Prompter) Collect(ctx context.Context, kind resolve.Kind) ([]string, error) {
	var files []string
	for {
		answer, err := p.Ask(ctx, "> ")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(answer, doneSentinel) {
			return files, nil
		}
		if answer == "" {
			continue
		}

		path, ok := p.resolver.Resolve(answer)
		if !ok {
			fmt.Fprintf(p.out, "Not found: %s\n", answer)
			continue
		}
		if !kind.Accepts(path) {
			fmt.Fprintf(p.out, "Not a valid %s path (expected %s): %s\n",
				kind, strings.Join(kind.Extensions(), ", "), answer)
			continue
		}
		files = append(files, path)
	}
}
