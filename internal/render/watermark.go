// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render draws watermarks onto raster images and rasterizes PDF
// pages.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

const (
	// marginX and marginY inset the watermark from the right and bottom edges.
	marginX = 20
	marginY = 10

	// sizeDivisor scales the font to about 4% of the shorter image side.
	sizeDivisor = 25
	minFontSize = 8
)

// WatermarkColor is the semi-transparent gray used for watermark text.
var WatermarkColor = color.NRGBA{R: 120, G: 120, B: 120, A: 160}

// Watermarker burns a text label into images.
type Watermarker struct {
	font *truetype.Font
	// FontSource names the loaded font file, or "builtin".
	FontSource string
}

// NewWatermarker loads the first parseable TrueType font from fontPaths. When
// none can be loaded the built-in Go Regular face is used.
func NewWatermarker(fontPaths []string) (*Watermarker, error) {
	for _, p := range fontPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			slog.Debug("Skipping unparseable font.", "path", p, "error", err)
			continue
		}
		slog.Debug("Loaded watermark font.", "path", p)
		return &Watermarker{font: f, FontSource: p}, nil
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in font: %w", err)
	}
	return &Watermarker{font: f, FontSource: "builtin"}, nil
}

// FontSize returns the point size used for an image of the given bounds.
func FontSize(bounds image.Rectangle) float64 {
	short := bounds.Dx()
	if bounds.Dy() < short {
		short = bounds.Dy()
	}
	size := float64(short) / sizeDivisor
	if size < minFontSize {
		size = minFontSize
	}
	return size
}

// Apply returns an RGBA copy of src with text drawn near the bottom-right
// corner. src is not modified.
func (w *Watermarker) Apply(src image.Image, text string) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)

	face := truetype.NewFace(w.font, &truetype.Options{
		Size:    FontSize(dst.Bounds()),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(WatermarkColor),
		Face: face,
	}
	textW := d.MeasureString(text)
	descent := face.Metrics().Descent
	d.Dot = fixed.Point26_6{
		X: fixed.I(dst.Bounds().Dx()-marginX) - textW,
		Y: fixed.I(dst.Bounds().Dy()-marginY) - descent,
	}
	d.DrawString(text)
	return dst
}

// WatermarkFile decodes the image at path, applies text and writes the
// result as JPEG to out.
func (w *Watermarker) WatermarkFile(path, text string, out io.Writer, quality int) error {
	img, err := DecodeFile(path)
	if err != nil {
		return err
	}
	marked := w.Apply(img, text)
	if err := jpeg.Encode(out, marked, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encoding watermarked %s: %w", path, err)
	}
	return nil
}

// DecodeFile decodes a JPEG, PNG or WebP image.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	slog.Debug("Decoded image.", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}
