// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfops

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFiles is returned when an operation receives an empty selection.
	ErrNoFiles = errors.New("no files selected")

	// ErrTooFewFiles is returned by Merge for fewer than two inputs.
	ErrTooFewFiles = errors.New("need at least 2 PDFs to merge")

	// ErrNotFound is returned when a typed path does not resolve to a file.
	ErrNotFound = errors.New("file not found")
)

// PageOutOfRangeError reports a requested page that the document lacks.
type PageOutOfRangeError struct {
	Page  int // one-based
	Count int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d is out of range: document has %d page(s)", e.Page, e.Count)
}
