package pagerange

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrMalformed reports a part that is not an integer or integer range.
	ErrMalformed = errors.New("malformed page range")
	// ErrNonPositive reports a range bound below 1.
	ErrNonPositive = errors.New("page numbers must be positive")
	// ErrInverted reports a range whose start is after its end.
	ErrInverted = errors.New("inverted page range")
	// ErrOutOfRange reports a single page outside [1, total].
	ErrOutOfRange = errors.New("page number out of range")
	// ErrEmptyDeck reports a range given for a deck without slides.
	ErrEmptyDeck = errors.New("presentation has no slides")
	// ErrEmptyExpression reports an explicitly requested but blank range.
	ErrEmptyExpression = errors.New("page range cannot be empty")
)

// Set holds 0-indexed page numbers.
type Set map[int]struct{}

// All returns the set of every page in a deck of total slides.
func All(total int) Set {
	s := make(Set, total)
	for i := 0; i < total; i++ {
		s[i] = struct{}{}
	}
	return s
}

// Contains reports whether the 0-indexed page is selected.
func (s Set) Contains(page int) bool {
	_, ok := s[page]
	return ok
}

// Sorted returns the selected pages in ascending order.
func (s Set) Sorted() []int {
	pages := make([]int, 0, len(s))
	for p := range s {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// Parse converts expr into a set of 0-indexed pages for a deck of total
// slides. Non-fatal problems (a range starting past the end, an end capped
// to the deck size) are written to warn, which may be nil.
func Parse(expr string, total int, warn io.Writer) (Set, error) {
	selected := make(Set)
	if warn == nil {
		warn = io.Discard
	}

	if total == 0 {
		if expr != "" {
			return nil, fmt.Errorf("%w: cannot apply page range '%s' to an empty presentation", ErrEmptyDeck, expr)
		}
		return selected, nil
	}

	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: --pages was given without a value", ErrEmptyExpression)
	}

	for _, raw := range strings.Split(expr, ",") {
		part := strings.TrimSpace(raw)
		if part == "" {
			continue
		}

		if !strings.Contains(part, "-") {
			page, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid page number '%s', must be an integer", ErrMalformed, raw)
			}
			if page < 1 || page > total {
				return nil, fmt.Errorf("%w: page number %d in '%s' is outside [1, %d]", ErrOutOfRange, page, raw, total)
			}
			selected[page-1] = struct{}{}
			continue
		}

		bounds := strings.SplitN(part, "-", 2)
		startStr, endStr := strings.TrimSpace(bounds[0]), strings.TrimSpace(bounds[1])

		start := 1
		if startStr != "" {
			n, err := parseBound(startStr, "start", raw)
			if err != nil {
				return nil, err
			}
			start = n
		}

		end := total
		if endStr != "" {
			n, err := parseBound(endStr, "end", raw)
			if err != nil {
				return nil, err
			}
			end = n
		}

		if start > end {
			return nil, fmt.Errorf("%w: start page %d is greater than end page %d in '%s'", ErrInverted, start, end, raw)
		}

		if start > total {
			fmt.Fprintf(warn, "Warning: Start page %d in range '%s' is beyond the total of %d slides. This part of the range will select no pages.\n", start, raw, total)
			continue
		}

		if endStr != "" && end > total {
			fmt.Fprintf(warn, "Warning: End page %d in range '%s' is beyond the total of %d slides. Range will be capped at %d.\n", end, raw, total, total)
			end = total
		}

		for p := start; p <= end; p++ {
			selected[p-1] = struct{}{}
		}
	}

	return selected, nil
}

func parseBound(s, which, raw string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s page number '%s' in '%s', must be an integer", ErrMalformed, which, s, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: found %s '%s' in '%s'", ErrNonPositive, which, s, raw)
	}
	return n, nil
}
