package dsm

// sourcemap.go provides a minimal stand-in for the source-map utility that
// the specification treats as an external collaborator (§1): a mapping
// from instruction index back to the originating flowchart source line.
// The VM never consults it; it exists so the `cover` CLI command can
// annotate a coverage report with source lines when a host ships a sidecar
// map alongside its compiled DSMAL.

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SourceMap associates instruction indices with source line numbers.
type SourceMap struct {
	lines []int
}

// ParseSourceMap reads one line number per instruction index, one per text
// line, blank lines skipped.
func ParseSourceMap(r io.Reader) (*SourceMap, error) {
	var lines []int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("sourcemap: %w", err)
		}

		lines = append(lines, n)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sourcemap: %w", err)
	}

	return &SourceMap{lines: lines}, nil
}

// Line returns the source line recorded for an instruction index, or 0 if
// the map is nil or has no entry for it.
func (s *SourceMap) Line(instruction int) int {
	if s == nil || instruction < 0 || instruction >= len(s.lines) {
		return 0
	}

	return s.lines[instruction]
}

// Len reports how many instruction indices the map covers.
func (s *SourceMap) Len() int {
	if s == nil {
		return 0
	}

	return len(s.lines)
}
