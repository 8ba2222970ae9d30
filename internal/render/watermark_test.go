// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestNewWatermarkerFallsBackToBuiltin(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(bogus, []byte("not a font"), 0o644))

	w, err := NewWatermarker([]string{filepath.Join(dir, "missing.ttf"), bogus})
	require.NoError(t, err)
	assert.Equal(t, "builtin", w.FontSource)
}

func TestNewWatermarkerLoadsFirstFont(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.ttf")
	second := filepath.Join(dir, "second.ttf")
	require.NoError(t, os.WriteFile(first, goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(second, goregular.TTF, 0o644))

	w, err := NewWatermarker([]string{filepath.Join(dir, "missing.ttf"), first, second})
	require.NoError(t, err)
	assert.Equal(t, first, w.FontSource)
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name   string
		bounds image.Rectangle
		want   float64
	}{
		{"landscape uses height", image.Rect(0, 0, 1000, 500), 20},
		{"portrait uses width", image.Rect(0, 0, 2500, 5000), 100},
		{"tiny images get a floor", image.Rect(0, 0, 50, 50), minFontSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FontSize(tt.bounds), 0.001)
		})
	}
}

func TestApplyDrawsBottomRight(t *testing.T) {
	w, err := NewWatermarker(nil)
	require.NoError(t, err)

	src := solidImage(600, 400, color.White)
	out := w.Apply(src, "Prepared by Ada")

	assert.Equal(t, src.Bounds().Dx(), out.Bounds().Dx())
	assert.Equal(t, src.Bounds().Dy(), out.Bounds().Dy())

	// The source is left untouched.
	assert.Equal(t, color.RGBAModel.Convert(color.White), src.At(599, 399))

	quadrant := func(x0, y0, x1, y1 int) int {
		changed := 0
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if out.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
					changed++
				}
			}
		}
		return changed
	}

	assert.Positive(t, quadrant(300, 300, 600, 400), "watermark should touch the bottom-right region")
	assert.Zero(t, quadrant(0, 0, 300, 200), "top-left region should be untouched")
	assert.Zero(t, quadrant(590, 0, 600, 400), "right margin should be untouched")
	assert.Zero(t, quadrant(0, 395, 600, 400), "bottom margin should be untouched")
}

func TestApplyTextIsGray(t *testing.T) {
	w, err := NewWatermarker(nil)
	require.NoError(t, err)

	out := w.Apply(solidImage(800, 800, color.White), "Prepared by Ada")

	// Every changed pixel is a blend of white and the watermark gray, so its
	// channels stay equal and never get darker than the gray itself.
	for y := 0; y < 800; y++ {
		for x := 0; x < 800; x++ {
			c := out.RGBAAt(x, y)
			if c == (color.RGBA{255, 255, 255, 255}) {
				continue
			}
			assert.Equal(t, c.R, c.G)
			assert.Equal(t, c.G, c.B)
			assert.GreaterOrEqual(t, c.R, WatermarkColor.R)
		}
	}
}

func TestWatermarkFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(320, 240, color.White)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	w, err := NewWatermarker(nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, w.WatermarkFile(path, "Prepared by Ada", &out, 90))

	img, err := jpeg.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
}

func TestWatermarkFileErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "fake.png")
	require.NoError(t, os.WriteFile(notImage, []byte("plain text"), 0o644))

	w, err := NewWatermarker(nil)
	require.NoError(t, err)

	err = w.WatermarkFile(filepath.Join(dir, "missing.png"), "x", &bytes.Buffer{}, 90)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening image")

	err = w.WatermarkFile(notImage, "x", &bytes.Buffer{}, 90)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding image")
}

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
