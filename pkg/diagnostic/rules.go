package diagnostic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/walteh/goslim/pkg/position"
	"github.com/walteh/goslim/pkg/slim"
)

var (
	tagNameRegex       = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)
	attributeNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	selectorOnlyRegex  = regexp.MustCompile(`^[#.][a-zA-Z0-9_-]*\s*$`)
	endKeywordRegex    = regexp.MustCompile(`\bend\b`)
	blockOpenerRegex   = regexp.MustCompile(`(if|unless|case|begin|def|class|module|while|until|for)\s`)
)

// a finding is a message and range; the rule supplies code and severity
type finding struct {
	message string
	rng     position.Range
}

type rule struct {
	code     string
	severity Severity
	check    func(opts Options, n *slim.Node) (finding, bool)
}

var rules = []rule{
	{code: RuleInvalidTagSyntax, severity: SeverityError, check: checkTagSyntax},
	{code: RuleUnclosedBrackets, severity: SeverityError, check: checkUnclosedBrackets},
	{code: RuleInvalidAttributeSyntax, severity: SeverityError, check: checkAttributeSyntax},
	{code: RuleInconsistentIndentation, severity: SeverityWarning, check: checkIndentation},
	// duplicate ids need document state and are handled by the engine
	{code: RuleDuplicateID, severity: SeverityWarning},
	{code: RuleEmptyTag, severity: SeverityWarning, check: checkEmptyTag},
	{code: RuleInvalidLogicSyntax, severity: SeverityError, check: checkLogicSyntax},
}

// nodeRange spans the content of the line, indentation excluded.
func nodeRange(n *slim.Node) position.Range {
	indent := len(n.LeadingWhitespace())
	return position.NewBasicPosition(n.Raw[indent:], indent).OnLine(n.Line - 1)
}

func at(n *slim.Node, format string, args ...any) (finding, bool) {
	return finding{message: fmt.Sprintf(format, args...), rng: nodeRange(n)}, true
}

func validLeadingChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	}
	return strings.IndexByte("#.[-=/|'<*", c) >= 0
}

func checkTagSyntax(_ Options, n *slim.Node) (finding, bool) {
	if n.Tag != "" && !tagNameRegex.MatchString(n.Tag) {
		return at(n, "Invalid tag name: '%s'. Tag names must start with a letter and contain only letters and numbers.", n.Tag)
	}
	if n.Trimmed != "" && !validLeadingChar(n.Trimmed[0]) {
		return at(n, "Invalid syntax. Lines must start with a tag name, #id, .class, [attributes], -, =, /, or |.")
	}
	return finding{}, false
}

// checkUnclosedBrackets balances delimiters over the whole subtree, so a call
// opened on one line may close on a nested line below it.
func checkUnclosedBrackets(_ Options, n *slim.Node) (finding, bool) {
	if !strings.ContainsAny(n.Raw, "([{") {
		return finding{}, false
	}

	var brackets, parens, braces int
	for _, c := range n.SubtreeContent() {
		switch c {
		case '[':
			brackets++
		case ']':
			brackets--
		case '(':
			parens++
		case ')':
			parens--
		case '{':
			braces++
		case '}':
			braces--
		}
	}

	switch {
	case brackets != 0:
		return at(n, "Unclosed square brackets in attributes.")
	case parens != 0:
		return at(n, "Unclosed parentheses.")
	case braces != 0:
		return at(n, "Unclosed curly braces.")
	}
	return finding{}, false
}

func checkAttributeSyntax(_ Options, n *slim.Node) (finding, bool) {
	for _, group := range n.Attributes {
		if strings.TrimSpace(group) == "" {
			return at(n, "Empty attribute brackets are not allowed.")
		}
		for _, pair := range splitPairs(group) {
			eq := strings.IndexByte(pair, '=')
			if eq < 0 {
				continue
			}
			key := strings.TrimSpace(pair[:eq])
			if key == "" {
				return at(n, "Attribute name cannot be empty.")
			}
			if !attributeNameRegex.MatchString(key) {
				return at(n, "Invalid attribute name: '%s'. Attribute names must start with a letter.", key)
			}
		}
	}
	return finding{}, false
}

// splitPairs splits on whitespace outside of quotes.
func splitPairs(s string) []string {
	var pairs []string
	var quote byte
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			if start < 0 {
				start = i
			}
		case c == ' ' || c == '\t':
			if start >= 0 {
				pairs = append(pairs, s[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		pairs = append(pairs, s[start:])
	}
	return pairs
}

func checkIndentation(opts Options, n *slim.Node) (finding, bool) {
	ws := n.LeadingWhitespace()
	if ws == "" {
		return finding{}, false
	}
	rng := position.LineRange(n.Line-1, 0, len(ws))

	if opts.UseTabs {
		if strings.Contains(ws, " ") {
			return finding{message: "Inconsistent indentation: expected tabs but found spaces.", rng: rng}, true
		}
		return finding{}, false
	}

	if strings.Contains(ws, "\t") {
		return finding{message: "Inconsistent indentation: expected spaces but found tabs.", rng: rng}, true
	}

	size := opts.IndentSize
	if size <= 0 {
		size = DefaultOptions().IndentSize
	}
	if len(ws)%size != 0 {
		return finding{message: fmt.Sprintf("Inconsistent indentation: expected multiples of %d spaces.", size), rng: rng}, true
	}
	return finding{}, false
}

func checkEmptyTag(_ Options, n *slim.Node) (finding, bool) {
	if selectorOnlyRegex.MatchString(n.Trimmed) && !strings.Contains(n.Trimmed, "[") && len(n.Children) == 0 {
		return at(n, "Empty tag with only selectors. Consider adding content or removing the line.")
	}
	return finding{}, false
}

var logicMarkers = []string{"==", "=>", "=<", "=", "-"}

func checkLogicSyntax(_ Options, n *slim.Node) (finding, bool) {
	if n.Kind != slim.KindLogic {
		return finding{}, false
	}

	code := n.Trimmed
	for _, m := range logicMarkers {
		if strings.HasPrefix(code, m) {
			code = strings.TrimSpace(code[len(m):])
			break
		}
	}

	if strings.Count(code, "'")%2 != 0 {
		return at(n, "Unmatched single quote in Ruby code.")
	}
	if strings.Count(code, `"`)%2 != 0 {
		return at(n, "Unmatched double quote in Ruby code.")
	}
	if endKeywordRegex.MatchString(code) && !blockOpenerRegex.MatchString(code) {
		return at(n, "Unexpected 'end' keyword without matching block opener.")
	}
	return finding{}, false
}
