// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfops

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/potentia/internal/pagerange"
	"github.com/pdiddy/potentia/pkg/types"
)

// Split builds a new document from the pages named by rangeSpec, in the
// exact order and multiplicity given. A malformed spec yields a
// *pagerange.ParseError; a page the document lacks yields a
// *PageOutOfRangeError. Nothing is written in either case.
func (r *Runner) Split(ctx context.Context, path, rangeSpec string) (types.Artifact, error) {
	pages, err := pagerange.Parse(rangeSpec)
	if err != nil {
		return types.Artifact{}, err
	}
	return r.SplitPages(ctx, path, pages)
}

// SplitPages is Split for already parsed zero-based indices.
func (r *Runner) SplitPages(ctx context.Context, path string, pages []int) (types.Artifact, error) {
	if len(pages) == 0 {
		return types.Artifact{}, &pagerange.ParseError{Reason: "no pages selected"}
	}
	if err := ctx.Err(); err != nil {
		return types.Artifact{}, err
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		return types.Artifact{}, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, idx := range pages {
		if idx < 0 || idx >= count {
			return types.Artifact{}, &PageOutOfRangeError{Page: idx + 1, Count: count}
		}
	}

	out, at, err := r.newOutput(types.OpSplit, fmt.Sprintf("%dpages", len(pages)))
	if err != nil {
		return types.Artifact{}, err
	}

	selection := pagerange.Format(pages)
	slog.Debug("Collecting pages.", "source", path, "pages", selection, "output", out)
	if err := api.CollectFile(path, out, selection, pdfConfig()); err != nil {
		os.Remove(out)
		return types.Artifact{}, fmt.Errorf("extracting pages from %s: %w", path, err)
	}
	return finish(types.OpSplit, out, []string{path}, at)
}
