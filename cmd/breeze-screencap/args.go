package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePoint parses "X,Y".
func parsePoint(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

// parseInts parses every arg as a decimal integer.
func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", a)
		}
		out[i] = n
	}
	return out, nil
}

// parseHandle accepts decimal or 0x-prefixed hex window handles.
func parseHandle(s string) (uint64, error) {
	h, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q", s)
	}
	return h, nil
}
