// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve maps user-typed filenames to existing files and classifies
// them by extension.
package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind selects an extension allow-list.
type Kind int

const (
	KindImage Kind = iota
	KindPDF
)

var allowed = map[Kind][]string{
	KindImage: {".jpg", ".jpeg", ".png", ".webp"},
	KindPDF:   {".pdf"},
}

// String returns a human label used in prompts and rejection notices.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindPDF:
		return "PDF"
	default:
		return "file"
	}
}

// Extensions returns the allow-list for k.
func (k Kind) Extensions() []string {
	return allowed[k]
}

// Accepts reports whether path carries one of the extensions allowed for k.
// The comparison is case-insensitive.
func (k Kind) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range allowed[k] {
		if ext == e {
			return true
		}
	}
	return false
}

// Resolver looks up files by trying the input as given, then under each
// candidate directory in order.
type Resolver struct {
	dirs []string
	home string
}

// New returns a Resolver searching dirs in the given order.
func New(dirs []string) *Resolver {
	home, _ := os.UserHomeDir()
	return &Resolver{
		dirs: append([]string(nil), dirs...),
		home: home,
	}
}

// Resolve returns the absolute path of the first existing regular file that
// input identifies. ok is false when nothing matches; a missing file is not
// an error.
func (r *Resolver) Resolve(input string) (path string, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	input = r.expandHome(input)

	if p, ok := existingFile(input); ok {
		return p, true
	}
	if filepath.IsAbs(input) {
		return "", false
	}
	for _, dir := range r.dirs {
		if p, ok := existingFile(filepath.Join(dir, input)); ok {
			return p, true
		}
	}
	return "", false
}

func (r *Resolver) expandHome(p string) string {
	if r.home == "" {
		return p
	}
	if p == "~" {
		return r.home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(r.home, p[2:])
	}
	return p
}

func existingFile(p string) (string, bool) {
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p, true
	}
	return abs, true
}
