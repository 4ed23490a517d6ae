package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gluax-lang/lsp"
)

// RuneIndex converts between LSP positions, which count UTF-16 code
// units, and span columns, which count runes in Groovy files and bytes in
// Java files.
type RuneIndex struct {
	Lines []string
}

func BuildRuneIndex(text string) RuneIndex {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return RuneIndex{Lines: lines}
}

// Column is the 1-based line and column of an LSP position.
func (ri RuneIndex) Column(pos lsp.Position, bytes bool) (uint32, uint32) {
	line := pos.Line + 1
	if int(pos.Line) >= len(ri.Lines) {
		return line, pos.Character + 1
	}
	var units, col uint32
	for i, r := range ri.Lines[pos.Line] {
		if units >= pos.Character {
			if bytes {
				return line, uint32(i) + 1
			}
			return line, col + 1
		}
		units += uint32(utf16.RuneLen(r))
		col++
	}
	if bytes {
		return line, uint32(len(ri.Lines[pos.Line])) + 1
	}
	return line, col + 1
}

// utf16 is the UTF-16 offset of the 0-based column offset on a 0-based
// line.
func (ri RuneIndex) utf16(line, offset uint32, bytes bool) uint32 {
	if int(line) >= len(ri.Lines) {
		return offset
	}
	text := ri.Lines[line]
	var units, n uint32
	for i, r := range text {
		at := n
		if bytes {
			at = uint32(i)
		}
		if at >= offset {
			return units
		}
		units += uint32(utf16.RuneLen(r))
		n++
	}
	if bytes && offset > uint32(len(text)) || !bytes && offset > uint32(utf8.RuneCountInString(text)) {
		return units + offset - n
	}
	return units
}

// Range converts a range whose characters are span columns, as
// common.Span.ToRange builds it, to UTF-16 units.
func (ri RuneIndex) Range(r lsp.Range, bytes bool) lsp.Range {
	r.Start.Character = ri.utf16(r.Start.Line, r.Start.Character, bytes)
	r.End.Character = ri.utf16(r.End.Line, r.End.Character, bytes)
	return r
}

// Position converts a 0-based position whose character is a span column
// offset to UTF-16 units.
func (ri RuneIndex) Position(p lsp.Position, bytes bool) lsp.Position {
	p.Character = ri.utf16(p.Line, p.Character, bytes)
	return p
}

// RuneBefore is the rune just before an LSP position on its line.
func (ri RuneIndex) RuneBefore(pos lsp.Position) (rune, bool) {
	if int(pos.Line) >= len(ri.Lines) {
		return 0, false
	}
	var units uint32
	last, ok := rune(0), false
	for _, r := range ri.Lines[pos.Line] {
		if units >= pos.Character {
			break
		}
		last, ok = r, true
		units += uint32(utf16.RuneLen(r))
	}
	return last, ok
}
