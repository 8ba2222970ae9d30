// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Operation names one of the menu operations. The value doubles as the
// leading tag of generated filenames.
type Operation string

const (
	OpConvert  Operation = "converted"
	OpMerge    Operation = "merged"
	OpSplit    Operation = "split"
	OpCompress Operation = "compressed"
)

// Artifact describes one PDF written into the output directory.
type Artifact struct {
	// Operation is the operation that produced the file.
	Operation Operation `json:"operation" yaml:"operation"`

	// Path is the absolute path of the written PDF.
	Path string `json:"path" yaml:"path"`

	// Pages is the page count of the written PDF.
	Pages int `json:"pages" yaml:"pages"`

	// Sources lists the input files in the order they were used.
	Sources []string `json:"sources" yaml:"sources"`

	// CreatedAt is when the file was written.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
