// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/potentia/pkg/types"
)

// WatermarkText returns the label burned into converted pages.
func WatermarkText(name string) string {
	return "Prepared by " + name
}

// Convert watermarks each image with "Prepared by {name}" and assembles the
// results, in order, into one PDF with one page per image. Intermediate
// files live in a temporary directory that is removed on every return path.
func (r *Runner) Convert(ctx context.Context, images []string, name string) (types.Artifact, error) {
	if len(images) == 0 {
		return types.Artifact{}, ErrNoFiles
	}

	tmpDir, err := os.MkdirTemp("", "potentia-convert-*")
	if err != nil {
		return types.Artifact{}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	text := WatermarkText(name)
	marked := make([]string, 0, len(images))
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return types.Artifact{}, err
		}
		p := filepath.Join(tmpDir, fmt.Sprintf("page_%04d.jpg", i+1))
		if err := r.watermarkTo(img, text, p); err != nil {
			return types.Artifact{}, err
		}
		fmt.Fprintf(r.out, "watermarked: %s\n", filepath.Base(img))
		marked = append(marked, p)
	}

	out, at, err := r.newOutput(types.OpConvert, fmt.Sprintf("%dpages", len(images)))
	if err != nil {
		return types.Artifact{}, err
	}
	if err := api.ImportImagesFile(marked, out, nil, pdfConfig()); err != nil {
		os.Remove(out)
		return types.Artifact{}, fmt.Errorf("assembling %d images into PDF: %w", len(marked), err)
	}
	return finish(types.OpConvert, out, images, at)
}

func (r *Runner) watermarkTo(src, text, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if err := r.watermarker.WatermarkFile(src, text, f, r.cfg.JPEGQuality); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
