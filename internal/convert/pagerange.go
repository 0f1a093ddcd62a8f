// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxPage bounds page numbers so a typo cannot expand into millions of pages.
const maxPage = 99999

// PageRange selects zero-based PDF pages. The zero value selects all pages.
type PageRange struct {
	spec  string
	pages []int
}

// ParsePageRange parses a comma-separated list of page numbers and
// inclusive ranges, e.g. "0,5-10,20". Whitespace around items is ignored.
// An empty spec selects every page.
func ParsePageRange(spec string) (PageRange, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return PageRange{}, nil
	}

	seen := make(map[int]bool)
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return PageRange{}, fmt.Errorf("page range %q: empty item", spec)
		}

		lo, hi, isRange := strings.Cut(item, "-")
		start, err := parsePage(spec, lo)
		if err != nil {
			return PageRange{}, err
		}
		end := start
		if isRange {
			end, err = parsePage(spec, hi)
			if err != nil {
				return PageRange{}, err
			}
			if end < start {
				return PageRange{}, fmt.Errorf("page range %q: %d-%d runs backwards", spec, start, end)
			}
		}
		for p := start; p <= end; p++ {
			seen[p] = true
		}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return PageRange{spec: spec, pages: pages}, nil
}

func parsePage(spec, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > maxPage {
		return 0, fmt.Errorf("page range %q: %q is not a page number", spec, s)
	}
	return n, nil
}

// All reports whether the range selects every page.
func (r PageRange) All() bool { return len(r.pages) == 0 }

// Pages returns the selected zero-based pages in ascending order, or nil
// when every page is selected.
func (r PageRange) Pages() []int {
	if r.All() {
		return nil
	}
	out := make([]int, len(r.pages))
	copy(out, r.pages)
	return out
}

// String returns the spec as given, for forwarding to external tools.
func (r PageRange) String() string { return r.spec }
