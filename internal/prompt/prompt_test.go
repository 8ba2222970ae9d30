// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/potentia/internal/resolve"
)

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	png := writeFile(t, dir, "a.png")
	jpg := writeFile(t, dir, "b.JPG")
	pdf := writeFile(t, dir, "c.pdf")
	writeFile(t, dir, "notes.txt")

	tests := []struct {
		name      string
		kind      resolve.Kind
		lines     []string
		want      []string
		wantLog   []string
		remaining int
	}{
		{
			name:  "collects images until done",
			kind:  resolve.KindImage,
			lines: []string{"a.png", "b.JPG", "done"},
			want:  []string{png, jpg},
		},
		{
			name:    "wrong extension is rejected and collection continues",
			kind:    resolve.KindImage,
			lines:   []string{"c.pdf", "a.png", "DONE"},
			want:    []string{png},
			wantLog: []string{"Not a valid image path"},
		},
		{
			name:    "missing file is rejected",
			kind:    resolve.KindPDF,
			lines:   []string{"missing.pdf", "c.pdf", "Done"},
			want:    []string{pdf},
			wantLog: []string{"Not found: missing.pdf"},
		},
		{
			name:    "unknown extension is rejected for pdf",
			kind:    resolve.KindPDF,
			lines:   []string{"notes.txt", "done"},
			wantLog: []string{"Not a valid PDF path"},
		},
		{
			name:  "blank lines are skipped and sentinel is trimmed",
			kind:  resolve.KindPDF,
			lines: []string{"", "  c.pdf  ", "   done   "},
			want:  []string{pdf},
		},
		{
			name:  "duplicates are kept in order",
			kind:  resolve.KindPDF,
			lines: []string{"c.pdf", "c.pdf", "done"},
			want:  []string{pdf, pdf},
		},
		{
			name:      "lines after done are not consumed",
			kind:      resolve.KindPDF,
			lines:     []string{"done", "c.pdf"},
			remaining: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Lines(tt.lines...)
			var out bytes.Buffer
			p := New(src, &out, resolve.New([]string{dir}))

			got, err := p.Collect(context.Background(), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, msg := range tt.wantLog {
				assert.Contains(t, out.String(), msg)
			}
			assert.Equal(t, tt.remaining, src.Remaining())
		})
	}
}

func TestCollectCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png")

	p := New(Lines("a.png"), io.Discard, resolve.New([]string{dir}))
	got, err := p.Collect(context.Background(), resolve.KindImage)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Nil(t, got)
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	pdf := writeFile(t, dir, "doc.pdf")

	var out bytes.Buffer
	p := New(Lines(" doc.pdf ", "other.pdf"), &out, resolve.New([]string{dir}))

	got, ok, err := p.Path(context.Background(), "PDF path: ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pdf, got)
	assert.Equal(t, "PDF path: ", out.String())

	got, ok, err = p.Path(context.Background(), "PDF path: ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestReaderSource(t *testing.T) {
	src := NewReaderSource(strings.NewReader("first\r\nsecond\nthird"))
	ctx := context.Background()

	for _, want := range []string{"first", "second", "third"} {
		got, err := src.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := src.Next(ctx)
	assert.ErrorIs(t, err, ErrCancelled, "end of input reads as cancellation")
}

func TestReaderSourceLongLine(t *testing.T) {
	long := strings.Repeat("a", 200*1024) + ".pdf"
	src := NewReaderSource(strings.NewReader(long + "\nnext\n"))
	ctx := context.Background()

	got, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, long, got)

	got, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "next", got)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestCollectRejectsLongLine(t *testing.T) {
	long := strings.Repeat("x", 100*1024) + ".png"
	var out bytes.Buffer
	src := NewReaderSource(strings.NewReader(long + "\ndone\n"))
	p := New(src, &out, resolve.New(nil))

	files, err := p.Collect(context.Background(), resolve.KindImage)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Contains(t, out.String(), "Not found: ")
}

func TestReaderSourceContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	src := NewReaderSource(pr)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		_, err := src.Next(ctx)
		errc <- err
	}()

	cancel()
	select {
	case err := <-errc:
		assert.True(t, errors.Is(err, ErrCancelled))
	case <-time.After(2 * time.Second):
		t.Fatal("Next did not return after cancellation")
	}
}

func TestAskTrims(t *testing.T) {
	p := New(Lines("  Ada Lovelace \t"), io.Discard, resolve.New(nil))
	got, err := p.Ask(context.Background(), "Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}
