// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Rasterizer opens PDFs for page rendering.
type Rasterizer interface {
	Open(path string) (Document, error)
}

// Document is an open PDF whose pages can be rendered to bitmaps.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int
	// Render draws the zero-based page at dpi.
	Render(page int, dpi float64) (image.Image, error)
	Close() error
}

// FitzRasterizer renders pages with MuPDF through go-fitz.
type FitzRasterizer struct{}

// Open loads the PDF at path.
func (FitzRasterizer) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s for rendering: %w", path, err)
	}
	return &fitzDocument{doc: doc, path: path}, nil
}

type fitzDocument struct {
	doc  *fitz.Document
	path string
}

func (d *fitzDocument) NumPage() int { return d.doc.NumPage() }

func (d *fitzDocument) Render(page int, dpi float64) (image.Image, error) {
	img, err := d.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d of %s: %w", page+1, d.path, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
