package semtok_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/goslim/pkg/position"
	"github.com/walteh/goslim/pkg/semtok"
	"github.com/walteh/goslim/pkg/slim"
)

/*
Test Organization:
----------------

	+----------------+
	|  Test Groups   |
	+----------------+
	       |
	+------+-------+
	|              |
	Plain         Short
	Lines         Circuits
	|              |
	Selectors     Comments
	Attributes    Embedded
	Text          Logic

Every case parses a small document and tokenizes its last node, so the
kind propagation from the tree builder is exercised too.
*/

func tok(typ semtok.TokenType, text string, offset int) semtok.Token {
	mod := semtok.ModifierNone
	switch typ {
	case semtok.TokenID:
		mod = semtok.ModifierDeclaration
	case semtok.TokenAttributeValue:
		mod = semtok.ModifierReadonly
	case semtok.TokenEmbedded:
		mod = semtok.ModifierStatic
	}
	return semtok.Token{Type: typ, Modifier: mod, Range: position.NewBasicPosition(text, offset)}
}

func lastNode(t *testing.T, input string) *slim.Node {
	t.Helper()
	doc, err := slim.Parse(context.Background(), input)
	require.NoError(t, err)
	nodes := doc.Nodes()
	require.NotEmpty(t, nodes)
	return nodes[len(nodes)-1]
}

func TestPlainLineTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []semtok.Token
	}{
		{
			name:  "test_button_selectors_attributes_text",
			input: `button#save.btn.btn-primary disabled data-target="form" save changes`,
			expected: []semtok.Token{
				tok(semtok.TokenTag, "button", 0),
				tok(semtok.TokenID, "#save", 6),
				tok(semtok.TokenClass, ".btn", 11),
				tok(semtok.TokenClass, ".btn-primary", 15),
				tok(semtok.TokenBooleanAttribute, "disabled", 28),
				tok(semtok.TokenAttributeName, "data-target", 37),
				tok(semtok.TokenAttributeValue, `"form"`, 49),
				tok(semtok.TokenText, "save changes", 56),
			},
		},
		{
			name:  "test_indented_line_offsets_are_absolute",
			input: "div\n    p.lead Hello",
			expected: []semtok.Token{
				tok(semtok.TokenTag, "p", 4),
				tok(semtok.TokenClass, ".lead", 5),
				tok(semtok.TokenText, "Hello", 11),
			},
		},
		{
			name:  "test_tab_indented_offsets_are_bytes",
			input: "div\n\tp.lead Hello",
			expected: []semtok.Token{
				tok(semtok.TokenTag, "p", 1),
				tok(semtok.TokenClass, ".lead", 2),
				tok(semtok.TokenText, "Hello", 8),
			},
		},
		{
			name:  "test_implicit_div",
			input: "#main.wide",
			expected: []semtok.Token{
				tok(semtok.TokenID, "#main", 0),
				tok(semtok.TokenClass, ".wide", 5),
			},
		},
		{
			name:  "test_bracket_group",
			input: `a[href="/" title="x"] Home`,
			expected: []semtok.Token{
				tok(semtok.TokenTag, "a", 0),
				tok(semtok.TokenOperator, "[", 1),
				tok(semtok.TokenAttribute, `href="/" title="x"`, 2),
				tok(semtok.TokenOperator, "]", 20),
				tok(semtok.TokenText, "Home", 22),
			},
		},
		{
			name:  "test_empty_bracket_group",
			input: "input[]",
			expected: []semtok.Token{
				tok(semtok.TokenTag, "input", 0),
				tok(semtok.TokenOperator, "[", 5),
				tok(semtok.TokenOperator, "]", 6),
			},
		},
		{
			name:  "test_unterminated_bracket_group",
			input: `input[type="text" name="q"`,
			expected: []semtok.Token{
				tok(semtok.TokenTag, "input", 0),
				tok(semtok.TokenOperator, "[", 5),
				tok(semtok.TokenAttribute, `type="text" name="q"`, 6),
			},
		},
		{
			name:  "test_unterminated_quoted_value",
			input: `img src="/a.png alt=x`,
			expected: []semtok.Token{
				tok(semtok.TokenTag, "img", 0),
				tok(semtok.TokenAttributeName, "src", 4),
				tok(semtok.TokenAttributeValue, `"/a.png alt=x`, 8),
			},
		},
		{
			name:  "test_unquoted_value",
			input: "td colspan=2 total",
			expected: []semtok.Token{
				tok(semtok.TokenTag, "td", 0),
				tok(semtok.TokenAttributeName, "colspan", 3),
				tok(semtok.TokenAttributeValue, "2", 11),
				tok(semtok.TokenText, "total", 13),
			},
		},
		{
			name:  "test_interpolation_split",
			input: "p Hello #{user.name}, you have {{count}} items",
			expected: []semtok.Token{
				tok(semtok.TokenTag, "p", 0),
				tok(semtok.TokenText, "Hello", 2),
				tok(semtok.TokenVariable, "#{user.name}", 8),
				tok(semtok.TokenText, ", you have", 20),
				tok(semtok.TokenVariable, "{{count}}", 31),
				tok(semtok.TokenText, "items", 41),
			},
		},
		{
			name:  "test_tag_only_at_offset_zero",
			input: "span checked text",
			expected: []semtok.Token{
				tok(semtok.TokenTag, "span", 0),
				tok(semtok.TokenBooleanAttribute, "checked", 5),
				tok(semtok.TokenText, "text", 13),
			},
		},
		{
			name:  "test_non_identifier_first_word_is_text",
			input: "my-widget stuff",
			expected: []semtok.Token{
				tok(semtok.TokenText, "my-widget stuff", 0),
			},
		},
		{
			name:  "test_pipe_text",
			input: "| plain words",
			expected: []semtok.Token{
				tok(semtok.TokenText, "| plain words", 0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := semtok.GetTokensForNode(lastNode(t, tt.input))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestShortCircuitTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []semtok.Token
	}{
		{
			name:     "test_comment",
			input:    "/ a #note [x]",
			expected: []semtok.Token{tok(semtok.TokenComment, "/ a #note [x]", 0)},
		},
		{
			name:     "test_comment_block_child",
			input:    "/ a\n  div#x text",
			expected: []semtok.Token{tok(semtok.TokenComment, "div#x text", 2)},
		},
		{
			name:     "test_embedded_opener",
			input:    "  css:",
			expected: []semtok.Token{tok(semtok.TokenEmbedded, "css:", 2)},
		},
		{
			name:     "test_embedded_block_child",
			input:    "javascript:\n  if (a) { b[0] }",
			expected: []semtok.Token{tok(semtok.TokenEmbedded, "if (a) { b[0] }", 2)},
		},
		{
			name:     "test_logic_control",
			input:    "- if user.admin?",
			expected: []semtok.Token{tok(semtok.TokenLogic, "if user.admin?", 2)},
		},
		{
			name:     "test_logic_unescaped_output",
			input:    "  == render 'x'",
			expected: []semtok.Token{tok(semtok.TokenLogic, "render 'x'", 5)},
		},
		{
			name:     "test_logic_marker_only",
			input:    "-",
			expected: nil,
		},
		{
			name:     "test_doctype",
			input:    "doctype html",
			expected: []semtok.Token{tok(semtok.TokenDoctype, "doctype html", 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := semtok.GetTokensForNode(lastNode(t, tt.input))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTokensAreOrderedAndDisjoint(t *testing.T) {
	doc, err := slim.Parse(context.Background(), "html\n  body#b.x[data-a=\"[1]\"] checked a=b #{c} d\n  css:\n    .a { }\n  - x\n")
	require.NoError(t, err)

	for _, lt := range semtok.GetTokensForDocument(doc) {
		end := 0
		for i, tk := range lt.Tokens {
			assert.GreaterOrEqual(t, tk.Range.Offset, end, "line %d token %s", lt.Line, tk.Range)
			if i > 0 {
				assert.False(t, lt.Tokens[i-1].Range.HasRangeOverlapWith(tk.Range), "line %d token %s", lt.Line, tk.Range)
			}
			assert.Equal(t, tk.Range.Text, lt.Raw[tk.Range.Offset:tk.Range.End()])
			end = tk.Range.End()
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "tag", semtok.TokenTag.String())
	assert.Equal(t, "boolean-attribute", semtok.TokenBooleanAttribute.String())
	assert.Equal(t, "embedded", semtok.TokenEmbedded.String())
	assert.Equal(t, "unknown", semtok.TokenType(0).String())
	assert.Equal(t, "readonly", semtok.ModifierReadonly.String())
}
