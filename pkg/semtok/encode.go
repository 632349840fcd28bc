package semtok

import (
	"unicode/utf8"
)

// Legend lists the token type and modifier names in the order Encode indexes
// them.
type Legend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

func NewLegend() Legend {
	return Legend{
		TokenTypes:     append([]string(nil), tokenTypeNames...),
		TokenModifiers: append([]string(nil), tokenModifierNames...),
	}
}

/*
Encode packs tokens into the relative five-integer form used by editors:

	deltaLine, deltaStart, length, tokenType, tokenModifiers

Lines are 0-based. deltaStart is relative to the previous token when both sit
on the same line. Columns and lengths count UTF-16 code units.
*/
func Encode(lines []LineTokens) []uint32 {
	out := make([]uint32, 0)
	prevLine, prevStart := 0, 0

	for _, lt := range lines {
		line := lt.Line - 1
		for _, tok := range lt.Tokens {
			start := utf16Len(lt.Raw[:min(tok.Range.Offset, len(lt.Raw))])
			length := utf16Len(tok.Range.Text)

			deltaLine := line - prevLine
			deltaStart := start
			if deltaLine == 0 {
				deltaStart = start - prevStart
			}

			out = append(out,
				uint32(deltaLine),
				uint32(deltaStart),
				uint32(length),
				uint32(tok.Type-1),
				uint32(tok.Modifier),
			)
			prevLine, prevStart = line, start
		}
	}

	return out
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		s = s[size:]
	}
	return n
}
