// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfops implements the four PDF operations: convert images, merge,
// split and compress. Each operation writes one timestamped file into the
// output directory and reports it as a types.Artifact.
package pdfops

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/potentia/internal/render"
	"github.com/pdiddy/potentia/pkg/types"
)

// Runner executes operations against a fixed output directory.
type Runner struct {
	cfg         types.ToolConfig
	watermarker *render.Watermarker
	rasterizer  render.Rasterizer
	out         io.Writer
	now         func() time.Time
}

// New returns a Runner. Progress output is written to out.
func New(cfg types.ToolConfig, wm *render.Watermarker, rz render.Rasterizer, out io.Writer) *Runner {
	api.DisableConfigDir()
	return &Runner{
		cfg:         cfg.Normalize(),
		watermarker: wm,
		rasterizer:  rz,
		out:         out,
		now:         time.Now,
	}
}

// OutputDir returns the directory receiving generated files.
func (r *Runner) OutputDir() string {
	return r.cfg.OutputDir
}

// pdfConfig returns a fresh pdfcpu configuration tolerant of slightly
// malformed input files.
func pdfConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// newOutput reserves an output path for op.
func (r *Runner) newOutput(op types.Operation, details string) (string, time.Time, error) {
	at := r.now()
	p, err := outputPath(r.cfg.OutputDir, op, details, at)
	if err != nil {
		return "", at, err
	}
	return p, at, nil
}

// finish counts the pages of a written file and builds its artifact. The
// file is removed if it cannot be read back.
func finish(op types.Operation, path string, sources []string, at time.Time) (types.Artifact, error) {
	pages, err := api.PageCountFile(path)
	if err != nil {
		os.Remove(path)
		return types.Artifact{}, fmt.Errorf("verifying %s: %w", path, err)
	}
	slog.Info("Wrote output.", "operation", op, "path", path, "pages", pages)
	return types.Artifact{
		Operation: op,
		Path:      path,
		Pages:     pages,
		Sources:   append([]string(nil), sources...),
		CreatedAt: at,
	}, nil
}

// Merge concatenates files, in order, into one document.
func (r *Runner) Merge(ctx context.Context, files []string) (types.Artifact, error) {
	if len(files) < 2 {
		return types.Artifact{}, ErrTooFewFiles
	}
	if err := ctx.Err(); err != nil {
		return types.Artifact{}, err
	}

	out, at, err := r.newOutput(types.OpMerge, fmt.Sprintf("%dfiles", len(files)))
	if err != nil {
		return types.Artifact{}, err
	}

	slog.Debug("Merging PDFs.", "files", files, "output", out)
	if err := api.MergeCreateFile(files, out, false, pdfConfig()); err != nil {
		os.Remove(out)
		return types.Artifact{}, fmt.Errorf("merging %d PDFs: %w", len(files), err)
	}
	return finish(types.OpMerge, out, files, at)
}
