package lsp

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"shapegen/token"
)

// lineIndex maps byte offsets of a document to LSP positions. LSP
// characters count UTF-16 code units.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

func (l *lineIndex) position(offset int) protocol.Position {
	offset = min(max(offset, 0), len(l.text))
	line := sort.SearchInts(l.starts, offset+1) - 1
	units := 0
	for _, r := range l.text[l.starts[line]:offset] {
		if r == utf8.RuneError {
			units++
			continue
		}
		units += utf16.RuneLen(r)
	}
	return protocol.Position{Line: toUInteger(line), Character: toUInteger(units)}
}

// offset is the inverse of position. Positions past the end of a line
// clamp to the line end.
func (l *lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(l.starts) {
		return len(l.text)
	}
	offset := l.starts[line]
	units := 0
	for i, r := range l.text[offset:] {
		if r == '\n' || units >= int(pos.Character) {
			return offset + i
		}
		if r == utf8.RuneError {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
	}
	return len(l.text)
}

func (l *lineIndex) span(s token.Span) protocol.Range {
	end := s.End.Offset
	if end <= s.Start.Offset {
		end = s.Start.Offset + 1
	}
	return protocol.Range{Start: l.position(s.Start.Offset), End: l.position(end)}
}

func toUInteger(n int) protocol.UInteger {
	v, err := safecast.Conv[protocol.UInteger](n)
	if err != nil {
		return 0
	}
	return v
}
