package semtok

import (
	"regexp"
	"strings"

	"github.com/walteh/goslim/pkg/position"
	"github.com/walteh/goslim/pkg/slim"
)

var booleanAttributes = map[string]bool{
	"checked":  true,
	"selected": true,
	"disabled": true,
	"readonly": true,
	"multiple": true,
	"ismap":    true,
	"defer":    true,
	"declare":  true,
	"noresize": true,
	"nowrap":   true,
}

var (
	tagRegex           = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)
	interpolationRegex = regexp.MustCompile(`#\{[^}]*\}?|\{\{.*?(?:\}\}|$)`)
)

// logic markers, longest first
var logicMarkers = []string{"==", "=>", "=<", "=", "-"}

// GetTokensForDocument tokenizes every node of doc in document order.
func GetTokensForDocument(doc *slim.Document) []LineTokens {
	nodes := doc.Nodes()
	out := make([]LineTokens, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, LineTokens{
			Line:   n.Line,
			Raw:    n.Raw,
			Tokens: GetTokensForNode(n),
		})
	}
	return out
}

// GetTokensForNode returns the ordered, non-overlapping syntax ranges of a
// node's line.
func GetTokensForNode(n *slim.Node) []Token {
	if n == nil || n.IsRoot() || n.Trimmed == "" {
		return nil
	}

	s := &scanner{
		line:  n.Trimmed,
		// bytes, not columns, so offsets index n.Raw under tab indentation
		shift: len(n.LeadingWhitespace()),
	}

	switch n.Kind {
	case slim.KindComment, slim.KindCommentBlock:
		s.emit(TokenComment, ModifierNone, 0, len(s.line))
	case slim.KindEmbedded, slim.KindEmbeddedBlock:
		s.emit(TokenEmbedded, ModifierStatic, 0, len(s.line))
	case slim.KindDoctype:
		s.emit(TokenDoctype, ModifierNone, 0, len(s.line))
	case slim.KindLogic:
		s.scanLogic()
	default:
		s.scanPlain()
	}

	return s.tokens
}

type scanner struct {
	line   string
	shift  int
	tokens []Token
}

func (s *scanner) emit(typ TokenType, mod TokenModifier, start, end int) {
	if end <= start {
		return
	}
	tok := Token{
		Type:     typ,
		Modifier: mod,
		Range:    position.NewBasicPosition(s.line[start:end], start+s.shift),
	}
	// ranges stay disjoint: a token overlapping the previous one is dropped
	if k := len(s.tokens); k > 0 && s.tokens[k-1].Range.HasRangeOverlapWith(tok.Range) {
		return
	}
	s.tokens = append(s.tokens, tok)
}

func (s *scanner) scanLogic() {
	rest := s.line
	for _, m := range logicMarkers {
		if strings.HasPrefix(rest, m) {
			rest = rest[len(m):]
			break
		}
	}
	start := len(s.line) - len(strings.TrimLeft(rest, " \t"))
	s.emit(TokenLogic, ModifierNone, start, len(s.line))
}

func (s *scanner) scanPlain() {
	line := s.line
	i := 0
	for i < len(line) {
		c := line[i]

		if c == ' ' || c == '\t' {
			i++
			continue
		}

		// #id and .class
		if (c == '#' || c == '.') && i+1 < len(line) && slim.IsIdentByte(line[i+1]) {
			end := identEnd(line, i+1)
			typ, mod := TokenClass, ModifierNone
			if c == '#' {
				typ, mod = TokenID, ModifierDeclaration
			}
			s.emit(typ, mod, i, end)
			i = end
			continue
		}

		if c == '[' {
			i = s.scanBracket(i)
			continue
		}

		if isWordStart(c) {
			end := identEnd(line, i)
			word := line[i:end]

			if end < len(line) && line[end] == '=' {
				s.emit(TokenAttributeName, ModifierNone, i, end)
				i = s.scanValue(end + 1)
				continue
			}
			if booleanAttributes[word] {
				s.emit(TokenBooleanAttribute, ModifierNone, i, end)
				i = end
				continue
			}
			if i == 0 && tagRegex.MatchString(word) {
				s.emit(TokenTag, ModifierNone, i, end)
				i = end
				continue
			}
		}

		s.scanText(i)
		return
	}
}

// scanBracket handles a [...] group starting at open and returns the index
// after it.
func (s *scanner) scanBracket(open int) int {
	s.emit(TokenOperator, ModifierNone, open, open+1)

	closeAt := slim.MatchBracket(s.line, open)
	if closeAt < 0 {
		s.emit(TokenAttribute, ModifierNone, open+1, len(s.line))
		return len(s.line)
	}

	s.emit(TokenAttribute, ModifierNone, open+1, closeAt)
	s.emit(TokenOperator, ModifierNone, closeAt, closeAt+1)
	return closeAt + 1
}

// scanValue handles the value after key= and returns the index after it.
func (s *scanner) scanValue(start int) int {
	line := s.line
	if start >= len(line) {
		return start
	}

	if q := line[start]; q == '"' || q == '\'' {
		end := strings.IndexByte(line[start+1:], q)
		if end < 0 {
			s.emit(TokenAttributeValue, ModifierReadonly, start, len(line))
			return len(line)
		}
		end += start + 2
		s.emit(TokenAttributeValue, ModifierReadonly, start, end)
		return end
	}

	end := start
	for end < len(line) && line[end] != ' ' && line[end] != '\t' {
		end++
	}
	s.emit(TokenAttributeValue, ModifierReadonly, start, end)
	return end
}

// scanText emits the rest of the line as text, split around interpolations.
func (s *scanner) scanText(start int) {
	rest := s.line[start:]
	pos := 0
	for _, loc := range interpolationRegex.FindAllStringIndex(rest, -1) {
		s.emitText(start+pos, start+loc[0])
		s.emit(TokenVariable, ModifierNone, start+loc[0], start+loc[1])
		pos = loc[1]
	}
	s.emitText(start+pos, len(s.line))
}

func (s *scanner) emitText(start, end int) {
	for start < end && (s.line[start] == ' ' || s.line[start] == '\t') {
		start++
	}
	for end > start && (s.line[end-1] == ' ' || s.line[end-1] == '\t') {
		end--
	}
	s.emit(TokenText, ModifierNone, start, end)
}

func identEnd(line string, i int) int {
	for i < len(line) && slim.IsIdentByte(line[i]) {
		i++
	}
	return i
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
