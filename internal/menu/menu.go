// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package menu runs the interactive session: it prints the choices,
// gathers input through a prompt.Prompter, dispatches to the operations and
// reports each outcome before asking again.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/potentia/internal/pdfops"
	"github.com/pdiddy/potentia/internal/prompt"
	"github.com/pdiddy/potentia/internal/resolve"
	"github.com/pdiddy/potentia/pkg/types"
)

// Operations is the set of PDF operations the menu dispatches to.
// *pdfops.Runner satisfies it.
type Operations interface {
	Convert(ctx context.Context, images []string, name string) (types.Artifact, error)
	Merge(ctx context.Context, files []string) (types.Artifact, error)
	Split(ctx context.Context, path, rangeSpec string) (types.Artifact, error)
	Compress(ctx context.Context, path string) (types.Artifact, error)
	OutputDir() string
}

// Recorder stores produced artifacts. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, a types.Artifact) error
}

const banner = `
==== POTENTIA PDF TOOL ====
1. Convert Images to PDF (with watermark)
2. Merge PDFs
3. Split PDF
4. Compress PDF
0. Exit
`

// Loop owns the "awaiting choice" state.
type Loop struct {
	ops      Operations
	prompter *prompt.Prompter
	ledger   Recorder
	out      io.Writer
}

// New returns a Loop. ledger may be nil.
func New(ops Operations, p *prompt.Prompter, ledger Recorder, out io.Writer) *Loop {
	return &Loop{ops: ops, prompter: p, ledger: ledger, out: out}
}

// Run loops until the user picks 0 or input is cancelled. Operation
// failures are reported and the loop continues; only prompt.ErrCancelled
// (or a context error) ends it with an error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		fmt.Fprint(l.out, banner)
		fmt.Fprintf(l.out, "Output: %s\n", l.ops.OutputDir())
		choice, err := l.prompter.Ask(ctx, "Select: ")
		if err != nil {
			return err
		}

		var run func(context.Context) (types.Artifact, error)
		switch choice {
		case "1":
			run = l.convert
		case "2":
			run = l.merge
		case "3":
			run = l.split
		case "4":
			run = l.compress
		case "0":
			fmt.Fprintln(l.out, "Bye.")
			return nil
		default:
			fmt.Fprintln(l.out, "Invalid choice.")
			continue
		}

		art, err := run(ctx)
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) || ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(l.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(l.out, "Saved to: %s\n", art.Path)
		l.record(ctx, art)
	}
}

func (l *Loop) record(ctx context.Context, art types.Artifact) {
	if l.ledger == nil {
		return
	}
	if err := l.ledger.Record(ctx, art); err != nil {
		slog.Warn("Could not record artifact.", "path", art.Path, "error", err)
	}
}

func (l *Loop) convert(ctx context.Context) (types.Artifact, error) {
	fmt.Fprintln(l.out, "\nEnter paths to images (one per line). Type 'done' when finished:")
	images, err := l.prompter.Collect(ctx, resolve.KindImage)
	if err != nil {
		return types.Artifact{}, err
	}
	if len(images) == 0 {
		return types.Artifact{}, pdfops.ErrNoFiles
	}
	name, err := l.prompter.Ask(ctx, "Enter your name for watermark: ")
	if err != nil {
		return types.Artifact{}, err
	}
	return l.ops.Convert(ctx, images, name)
}

func (l *Loop) merge(ctx context.Context) (types.Artifact, error) {
	fmt.Fprintln(l.out, "\nEnter paths to PDFs to merge (one per line). Type 'done' when finished:")
	files, err := l.prompter.Collect(ctx, resolve.KindPDF)
	if err != nil {
		return types.Artifact{}, err
	}
	return l.ops.Merge(ctx, files)
}

func (l *Loop) split(ctx context.Context) (types.Artifact, error) {
	path, err := l.pdfPath(ctx, "Enter PDF path to split: ")
	if err != nil {
		return types.Artifact{}, err
	}
	ranges, err := l.prompter.Ask(ctx, "Enter page ranges (e.g., 1-3,5,7-9): ")
	if err != nil {
		return types.Artifact{}, err
	}
	return l.ops.Split(ctx, path, ranges)
}

func (l *Loop) compress(ctx context.Context) (types.Artifact, error) {
	path, err := l.pdfPath(ctx, "Enter PDF path to compress: ")
	if err != nil {
		return types.Artifact{}, err
	}
	return l.ops.Compress(ctx, path)
}

func (l *Loop) pdfPath(ctx context.Context, label string) (string, error) {
	path, ok, err := l.prompter.Path(ctx, label)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", pdfops.ErrNotFound
	}
	return path, nil
}
