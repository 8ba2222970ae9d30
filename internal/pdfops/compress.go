// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/potentia/pkg/types"
)

// Compress replaces every page of path with a single raster image of that
// page rendered at the configured DPI, keeping the original page size. Text
// and vector content are lost. The result is not guaranteed to be smaller.
func (r *Runner) Compress(ctx context.Context, path string) (types.Artifact, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return types.Artifact{}, fmt.Errorf("reading page sizes of %s: %w", path, err)
	}
	if len(dims) == 0 {
		return types.Artifact{}, fmt.Errorf("%s has no pages", path)
	}

	doc, err := r.rasterizer.Open(path)
	if err != nil {
		return types.Artifact{}, err
	}
	defer doc.Close()

	if n := doc.NumPage(); n != len(dims) {
		return types.Artifact{}, fmt.Errorf("%s: renderer sees %d pages, parser sees %d", path, n, len(dims))
	}

	rebuilt, err := newImageDocument(dims[0])
	if err != nil {
		return types.Artifact{}, err
	}

	bar := progressbar.NewOptions(len(dims),
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("Rasterizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	for i, dim := range dims {
		if err := ctx.Err(); err != nil {
			return types.Artifact{}, err
		}
		img, err := doc.Render(i, r.cfg.CompressDPI)
		if err != nil {
			return types.Artifact{}, err
		}
		if err := rebuilt.addPage(img, dim, r.cfg.JPEGQuality); err != nil {
			return types.Artifact{}, fmt.Errorf("placing page %d: %w", i+1, err)
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(r.out)

	out, at, err := r.newOutput(types.OpCompress, fmt.Sprintf("%dpages", len(dims)))
	if err != nil {
		return types.Artifact{}, err
	}
	if err := rebuilt.writeOptimized(out); err != nil {
		os.Remove(out)
		return types.Artifact{}, fmt.Errorf("writing compressed PDF: %w", err)
	}
	return finish(types.OpCompress, out, []string{path}, at)
}

// imageDocument accumulates image pages in memory and is written once.
type imageDocument struct {
	ctx       *model.Context
	pagesRef  *pdftypes.IndirectRef
	pagesDict pdftypes.Dict
}

func newImageDocument(first pdftypes.Dim) (*imageDocument, error) {
	conf := pdfConfig()
	conf.Cmd = model.IMPORTIMAGES
	ctx, err := pdfcpu.CreateContextWithXRefTable(conf, &pdftypes.Dim{Width: first.Width, Height: first.Height})
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	pagesRef, err := ctx.Pages()
	if err != nil {
		return nil, fmt.Errorf("locating page tree: %w", err)
	}
	pagesDict, err := ctx.DereferenceDict(*pagesRef)
	if err != nil {
		return nil, fmt.Errorf("reading page tree: %w", err)
	}
	return &imageDocument{ctx: ctx, pagesRef: pagesRef, pagesDict: pagesDict}, nil
}

// addPage appends one page of dim points holding img encoded as JPEG.
func (d *imageDocument) addPage(img image.Image, dim pdftypes.Dim, quality int) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encoding JPEG: %w", err)
	}

	refs, err := pdfcpu.NewPagesForImage(d.ctx.XRefTable, &buf, d.pagesRef, fullPageImport(dim))
	if err != nil {
		return err
	}
	if len(refs) != 1 {
		return errors.New("image did not produce exactly one page")
	}
	if err := d.ctx.SetValid(*refs[0]); err != nil {
		return err
	}
	if err := model.AppendPageTree(refs[0], 1, d.pagesDict); err != nil {
		return err
	}
	d.ctx.PageCount++
	return nil
}

// writeOptimized serializes the document and rewrites it through pdfcpu's
// optimizer into path.
func (d *imageDocument) writeOptimized(path string) error {
	var raw bytes.Buffer
	if err := api.WriteContext(d.ctx, &raw); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := api.Optimize(bytes.NewReader(raw.Bytes()), f, pdfConfig()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fullPageImport places one image centered on a page of exactly dim points,
// scaled to fit the page.
func fullPageImport(dim pdftypes.Dim) *pdfcpu.Import {
	imp := pdfcpu.DefaultImportConfig()
	imp.PageDim = &pdftypes.Dim{Width: dim.Width, Height: dim.Height}
	imp.UserDim = true
	imp.Pos = pdftypes.Center
	imp.Scale = 1.0
	imp.ScaleAbs = false
	return imp
}
