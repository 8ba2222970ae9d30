// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfops

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/potentia/pkg/types"
)

// timestampFormat renders creation times as YYYYMMDD_HHMMSS.
const timestampFormat = "20060102_150405"

// maxNameAttempts bounds the collision suffix search.
const maxNameAttempts = 1000

// OutputName returns "{op}_{details}_{timestamp}.pdf".
func OutputName(op types.Operation, details string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.pdf", op, details, at.Format(timestampFormat))
}

// outputPath picks a path in dir that does not exist yet. When the
// timestamped name is taken, _2, _3, ... is appended before the extension.
func outputPath(dir string, op types.Operation, details string, at time.Time) (string, error) {
	base := OutputName(op, details, at)
	p := filepath.Join(dir, base)
	if !exists(p) {
		return p, nil
	}

	stem := base[:len(base)-len(filepath.Ext(base))]
	for n := 2; n <= maxNameAttempts; n++ {
		p = filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", stem, n))
		if !exists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("no free output name for %s in %s", base, dir)
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
