// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/potentia/pkg/types"
)

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Documents", "Potentia")
	require.NoError(t, ensureOutputDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	err = ensureOutputDir(filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "termux-setup-storage")
}

func TestFormatHistory(t *testing.T) {
	entries := []types.Artifact{{
		Operation: types.OpMerge,
		Path:      "/out/merged_2files_20240101_120000.pdf",
		Pages:     5,
		Sources:   []string{"/a.pdf", "/b.pdf"},
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local),
	}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, entries, false))
		assert.Contains(t, buf.String(), "2024-01-01 12:00:00")
		assert.Contains(t, buf.String(), "merged_2files_20240101_120000.pdf")
		assert.Contains(t, buf.String(), "merged")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, entries, true))
		var got []types.Artifact
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, entries[0].Sources, got[0].Sources)
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, nil, false))
		assert.Equal(t, "No history yet.\n", buf.String())
	})
}
