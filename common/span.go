package common

import (
	"fmt"
	"sync/atomic"

	protocol "github.com/gluax-lang/lsp"
)

var globalSpanID uint64

func nextSpanID() uint64 {
	return atomic.AddUint64(&globalSpanID, 1)
}

// Span represents a range in a source file.
// Lines and columns are 1-based, ColumnEnd is the column of the last rune.
type Span struct {
	ID                     uint64
	LineStart, LineEnd     uint32
	ColumnStart, ColumnEnd uint32
	Source                 string // "" == unknown
}

func adjustN(n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	return n - 1
}

func (s Span) ToRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      adjustN(s.LineStart),
			Character: adjustN(s.ColumnStart),
		},
		End: protocol.Position{
			Line:      adjustN(s.LineEnd),
			Character: s.ColumnEnd,
		},
	}
}

func (s Span) ToLocation() protocol.Location {
	return protocol.Location{
		URI:   FilePathToURI(s.Source),
		Range: s.ToRange(),
	}
}

// Contains reports whether the 1-based line/column lies inside the span.
func (s Span) Contains(line, column uint32) bool {
	if line < s.LineStart || line > s.LineEnd {
		return false
	}
	if line == s.LineStart && column < s.ColumnStart {
		return false
	}
	if line == s.LineEnd && column > s.ColumnEnd {
		return false
	}
	return true
}

// Before reports whether s starts before other does.
func (s Span) Before(other Span) bool {
	if s.LineStart != other.LineStart {
		return s.LineStart < other.LineStart
	}
	return s.ColumnStart < other.ColumnStart
}

// EndsBefore reports whether s ends before other starts.
func (s Span) EndsBefore(other Span) bool {
	if s.LineEnd != other.LineStart {
		return s.LineEnd < other.LineStart
	}
	return s.ColumnEnd < other.ColumnStart
}

// Width is a rough ordering key used to pick the innermost of nested spans.
func (s Span) Width() uint64 {
	return uint64(s.LineEnd-s.LineStart)<<32 + uint64(s.ColumnEnd) - uint64(s.ColumnStart)
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d (%s)", s.LineStart, s.ColumnStart, s.LineEnd, s.ColumnEnd, s.Source)
}

func SpanDefault() Span {
	return SpanNew(1, 1, 1, 1)
}

func SpanNew(lineStart, lineEnd, columnStart, columnEnd uint32) Span {
	return Span{
		ID:          nextSpanID(),
		LineStart:   lineStart,
		LineEnd:     lineEnd,
		ColumnStart: columnStart,
		ColumnEnd:   columnEnd,
	}
}

func SpanSrc(src string) Span {
	span := SpanDefault()
	span.Source = src
	return span
}

// SpanFrom joins the outer bounds of two spans.
func SpanFrom(start, end Span) Span {
	span := SpanNew(start.LineStart, end.LineEnd, start.ColumnStart, end.ColumnEnd)
	span.Source = start.Source
	return span
}

func MaxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func MinUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
