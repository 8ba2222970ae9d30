// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagerange parses page-range expressions such as "1-3,5,7-9" into
// zero-based page indices.
package pagerange

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxPage is the highest page number an expression may name, and
// MaxSelection the most indices one expression may expand to. Both bound
// memory before any document is consulted.
const (
	MaxPage      = 100000
	MaxSelection = 100000
)

// ParseError reports a malformed segment of a page-range expression.
type ParseError struct {
	Segment string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("invalid page range: %s", e.Reason)
	}
	return fmt.Sprintf("invalid page range %q: %s", e.Segment, e.Reason)
}

// Parse expands spec into zero-based page indices. Segments are separated by
// commas; "a-b" expands to a..b inclusive and "n" yields a single page. Page
// numbers are one-based in spec. Order and duplicates are preserved exactly
// as written. Descending ranges, page numbers below 1 or above MaxPage,
// empty segments and expansions longer than MaxSelection are rejected.
// Indices are not checked against any document.
func Parse(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, &ParseError{Reason: "empty expression"}
	}

	var pages []int
	for _, seg := range strings.Split(spec, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return nil, &ParseError{Segment: spec, Reason: "empty segment"}
		}

		start, end, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}
		if len(pages)+end-start+1 > MaxSelection {
			return nil, &ParseError{Segment: seg, Reason: fmt.Sprintf("selects more than %d pages", MaxSelection)}
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p-1)
		}
	}
	return pages, nil
}

// parseSegment returns the one-based bounds of a single segment.
func parseSegment(seg string) (int, int, error) {
	lo, hi, isRange := strings.Cut(seg, "-")
	if !isRange {
		n, err := parsePage(seg, lo)
		return n, n, err
	}

	start, err := parsePage(seg, lo)
	if err != nil {
		return 0, 0, err
	}
	end, err := parsePage(seg, hi)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, &ParseError{Segment: seg, Reason: "range end is before range start"}
	}
	return start, end, nil
}

func parsePage(seg, text string) (int, error) {
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ParseError{Segment: seg, Reason: fmt.Sprintf("%q is not a page number", text)}
	}
	if n < 1 {
		return 0, &ParseError{Segment: seg, Reason: "page numbers start at 1"}
	}
	if n > MaxPage {
		return 0, &ParseError{Segment: seg, Reason: fmt.Sprintf("page %d exceeds the limit of %d", n, MaxPage)}
	}
	return n, nil
}

// Format renders zero-based indices as the one-based page list used by
// pdfcpu page selections, e.g. [0 0 2] becomes ["1" "1" "3"].
func Format(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = strconv.Itoa(idx + 1)
	}
	return out
}
