package slim

import (
	"regexp"
	"strings"
	"unicode"
)

// TabWidth is the number of columns a leading tab counts for.
const TabWidth = 4

// Line is the classifier's view of a single source line, before it is
// attached to a tree.
type Line struct {
	Raw      string
	Trimmed  string
	Indent   int
	Blank    bool
	Kind     Kind
	Language Language

	Tag        string
	ID         string
	Classes    []string
	Attributes []string
}

var (
	tagPrefixRegex      = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*`)
	embeddedOpenerRegex = regexp.MustCompile(`^([a-z]+):$`)
	idAttributeRegex    = regexp.MustCompile(`(?:^|[\s\[(])id=(?:"([^"]*)"|'([^']*)'|([^\s\])]+))`)
)

// SplitLines splits text into source lines, dropping a trailing carriage
// return from each.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// IndentationWidth scores the leading whitespace of line: four columns per
// tab, one per any other whitespace character.
func IndentationWidth(line string) int {
	width := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		if r == '\t' {
			width += TabWidth
		} else {
			width++
		}
	}
	return width
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

// Classify determines the structural kind of raw and extracts its selector
// and attribute fragments.
func Classify(raw string) Line {
	raw = strings.TrimSuffix(raw, "\r")
	trimmed := strings.TrimSpace(raw)

	ln := Line{
		Raw:     raw,
		Trimmed: trimmed,
		Indent:  IndentationWidth(raw),
	}

	if trimmed == "" {
		ln.Blank = true
		return ln
	}

	ln.Kind, ln.Language = classifyKind(trimmed)

	if ln.Kind == KindPlain {
		extractFragments(&ln)
	}

	return ln
}

func classifyKind(trimmed string) (Kind, Language) {
	switch {
	case strings.HasPrefix(trimmed, "/"):
		return KindComment, LanguageNone
	case trimmed == "doctype" || strings.HasPrefix(trimmed, "doctype "):
		return KindDoctype, LanguageNone
	case trimmed[0] == '-' || trimmed[0] == '=':
		return KindLogic, LanguageNone
	}

	if m := embeddedOpenerRegex.FindStringSubmatch(trimmed); m != nil {
		if lang, ok := embeddedOpeners[m[1]]; ok {
			return KindEmbedded, lang
		}
	}

	return KindPlain, LanguageNone
}

func extractFragments(ln *Line) {
	line := ln.Trimmed

	pos := 0
	if line[0] != '#' && line[0] != '.' {
		ln.Tag = tagPrefixRegex.FindString(line)
		pos = len(ln.Tag)
	}

	// selector shorthand directly after the tag: #id.class.other
	for pos < len(line) && (line[pos] == '#' || line[pos] == '.') {
		end := pos + 1
		for end < len(line) && isIdentByte(line[end]) {
			end++
		}
		if end == pos+1 {
			break
		}
		name := line[pos+1 : end]
		if line[pos] == '#' {
			if ln.ID == "" {
				ln.ID = name
			}
		} else {
			ln.Classes = append(ln.Classes, name)
		}
		pos = end
	}

	ln.Attributes = bracketGroups(line)

	if ln.ID == "" {
		if m := idAttributeRegex.FindStringSubmatch(line); m != nil {
			ln.ID = m[1] + m[2] + m[3]
		}
	}
}

// bracketGroups returns the interiors of the top-level [...] groups of line.
// An unterminated group runs to the end of the line.
func bracketGroups(line string) []string {
	var groups []string
	for i := 0; i < len(line); i++ {
		if line[i] != '[' {
			continue
		}
		closeAt := MatchBracket(line, i)
		if closeAt < 0 {
			groups = append(groups, line[i+1:])
			break
		}
		groups = append(groups, line[i+1:closeAt])
		i = closeAt
	}
	return groups
}

// MatchBracket returns the index of the ']' balancing the '[' at open, or -1.
func MatchBracket(line string, open int) int {
	depth := 0
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// IsIdentByte reports whether b may appear in an id, class, or attribute name.
func IsIdentByte(b byte) bool {
	return isIdentByte(b)
}
