// Package source resolves byte offsets within a single in-memory source
// string into 1-based line/column positions, and normalizes line endings
// on the way in.
package source

import (
	"strings"

	"fortio.org/safecast"
)

// File is one source unit: normalized text plus a line-start index for
// O(log n) offset resolution.
type File struct {
	Content   string
	lineStart []uint32 // byte offset of the start of each line; line 0 is lineStart[0] == 0
}

// NewFile normalizes CRLF/CR line endings to LF and builds the line index.
// Spec §6 accepts both Unix and Windows line endings on input; internally
// everything downstream only ever sees '\n'.
func NewFile(content string) *File {
	content = normalizeLineEndings(content)
	return &File{
		Content:   content,
		lineStart: buildLineIndex(content),
	}
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func buildLineIndex(content string) []uint32 {
	idx := []uint32{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			next, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(err)
			}
			idx = append(idx, next)
		}
	}
	return idx
}

// LineCol resolves a 0-based byte offset to a 1-based (line, column) pair.
func (f *File) LineCol(offset int) (line, column int) {
	off, err := safecast.Conv[uint32](offset)
	if err != nil {
		// A source this large is already outside any realistic teaching
		// program; clamp rather than propagate an internal panic to callers.
		clamped, clampErr := safecast.Conv[uint32](len(f.Content))
		if clampErr != nil {
			clamped = 0
		}
		off = clamped
	}
	// Binary search for the last lineStart <= off.
	lo, hi := 0, len(f.lineStart)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStart[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line = lo + 1
	column = int(off-f.lineStart[lo]) + 1
	return line, column
}

// Line returns the raw text of a 1-based line number, or "" if out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStart) {
		return ""
	}
	start := f.lineStart[n-1]
	end := uint32(len(f.Content))
	if n < len(f.lineStart) {
		end = f.lineStart[n] - 1 // exclude the trailing '\n'
	}
	if start > end || int(start) > len(f.Content) {
		return ""
	}
	if int(end) > len(f.Content) {
		end = uint32(len(f.Content))
	}
	return f.Content[start:end]
}
