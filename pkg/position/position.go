package position

import (
	"fmt"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Place is a line/character pair. Whether it is 0- or 1-based is decided by
// whoever produces it; the diagnostic and outline packages use 0-based
// places, matching editor conventions.
type Place struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Place `json:"start"`
	End   Place `json:"end"`
}

// LineRange spans [startCol, endCol) on a single line.
func LineRange(line, startCol, endCol int) Range {
	return Range{
		Start: Place{Line: line, Character: startCol},
		End:   Place{Line: line, Character: endCol},
	}
}

// RawPosition represents a position in a single source line
type RawPosition struct {
	// Offset is the byte offset in the source line
	Offset int
	// Text is the actual text at this position
	Text string
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// Length returns the byte length of the text at this position
func (p RawPosition) Length() int {
	return len(p.Text)
}

// End is the byte offset just past the text.
func (p RawPosition) End() int {
	return p.Offset + len(p.Text)
}

// HasRangeOverlapWith reports whether p and start share any byte.
func (p RawPosition) HasRangeOverlapWith(start RawPosition) bool {
	startOffset := start.Offset
	endOffset := start.End()

	posOffset := p.Offset
	posEndOffset := p.End()

	// zero-length positions overlap when they fall within the other range
	if p.Length() == 0 {
		return posOffset >= startOffset && posOffset <= endOffset
	}
	if start.Length() == 0 {
		return startOffset >= posOffset && startOffset <= posEndOffset
	}

	return startOffset < posEndOffset && endOffset > posOffset
}

// OnLine converts p to a 0-based range on the given line using byte columns.
func (p RawPosition) OnLine(line int) Range {
	return LineRange(line, p.Offset, p.End())
}

func (p RawPosition) String() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}

// GraphemeColumn converts a byte offset within line into the number of user
// perceived characters before it. Offsets past the end clamp to the line.
func GraphemeColumn(line string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	n, err := textseg.TokenCount([]byte(line[:byteOffset]), textseg.ScanGraphemeClusters)
	if err != nil {
		return byteOffset
	}
	return n
}
