// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	third := t.TempDir()

	writeFile(t, second, "report.pdf")
	writeFile(t, third, "report.pdf")
	writeFile(t, first, "scan.png")
	require.NoError(t, os.Mkdir(filepath.Join(first, "folder.pdf"), 0o755))

	literal := writeFile(t, t.TempDir(), "literal.pdf")

	r := New([]string{first, second, third})

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"literal absolute path", literal, literal, true},
		{"bare name found in second candidate", "report.pdf", filepath.Join(second, "report.pdf"), true},
		{"bare name found in first candidate", "scan.png", filepath.Join(first, "scan.png"), true},
		{"surrounding whitespace is trimmed", "  scan.png\t", filepath.Join(first, "scan.png"), true},
		{"missing file", "nope.pdf", "", false},
		{"directory is not a file", "folder.pdf", "", false},
		{"missing absolute path skips candidates", filepath.Join(t.TempDir(), "report.pdf"), "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRelativeLiteral(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "local.pdf")
	t.Chdir(dir)

	r := New(nil)
	got, ok := r.Resolve("local.pdf")
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(got), "resolved path should be absolute")
	assert.Equal(t, "local.pdf", filepath.Base(got))
}

func TestResolveHomeExpansion(t *testing.T) {
	home := t.TempDir()
	writeFile(t, home, "doc.pdf")

	r := New(nil)
	r.home = home

	got, ok := r.Resolve("~/doc.pdf")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, "doc.pdf"), got)
}

func TestKindAccepts(t *testing.T) {
	tests := []struct {
		kind Kind
		path string
		want bool
	}{
		{KindImage, "a.jpg", true},
		{KindImage, "a.JPEG", true},
		{KindImage, "a.Png", true},
		{KindImage, "a.webp", true},
		{KindImage, "a.gif", false},
		{KindImage, "a.pdf", false},
		{KindImage, "jpg", false},
		{KindPDF, "a.pdf", true},
		{KindPDF, "a.PDF", true},
		{KindPDF, "a.pdf.txt", false},
		{KindPDF, "a.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Accepts(tt.path))
		})
	}
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}
