package slim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/goslim/pkg/diff"
	"github.com/walteh/goslim/pkg/slim"
)

type shape struct {
	Text     string
	Depth    int
	Line     int
	Blanks   int
	Kind     string
	Children []shape
}

func shapeOf(n *slim.Node) []shape {
	out := []shape{}
	for _, c := range n.Children {
		out = append(out, shape{
			Text:     c.Trimmed,
			Depth:    c.Depth,
			Line:     c.Line,
			Blanks:   c.BlankLinesAbove,
			Kind:     c.Kind.String(),
			Children: shapeOf(c),
		})
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []shape
	}{
		{
			name:  "doctype_html_head_title",
			input: "doctype html\nhtml\n  head\n    title Test\n",
			expected: []shape{
				{Text: "doctype html", Depth: 0, Line: 1, Kind: "doctype", Children: []shape{}},
				{Text: "html", Depth: 0, Line: 2, Kind: "plain", Children: []shape{
					{Text: "head", Depth: 1, Line: 3, Kind: "plain", Children: []shape{
						{Text: "title Test", Depth: 2, Line: 4, Kind: "plain", Children: []shape{}},
					}},
				}},
			},
		},
		{
			name:  "large_indent_jump_is_one_level",
			input: "div\n        p deep\n",
			expected: []shape{
				{Text: "div", Depth: 0, Line: 1, Kind: "plain", Children: []shape{
					{Text: "p deep", Depth: 1, Line: 2, Kind: "plain", Children: []shape{}},
				}},
			},
		},
		{
			name:  "dedent_skips_levels",
			input: "a\n  b\n    c\n      d\n  e\n",
			expected: []shape{
				{Text: "a", Depth: 0, Line: 1, Kind: "plain", Children: []shape{
					{Text: "b", Depth: 1, Line: 2, Kind: "plain", Children: []shape{
						{Text: "c", Depth: 2, Line: 3, Kind: "plain", Children: []shape{
							{Text: "d", Depth: 3, Line: 4, Kind: "plain", Children: []shape{}},
						}},
					}},
					{Text: "e", Depth: 1, Line: 5, Kind: "plain", Children: []shape{}},
				}},
			},
		},
		{
			name:  "dedent_between_levels",
			input: "a\n    b\n  c\n",
			expected: []shape{
				{Text: "a", Depth: 0, Line: 1, Kind: "plain", Children: []shape{
					{Text: "b", Depth: 1, Line: 2, Kind: "plain", Children: []shape{}},
					{Text: "c", Depth: 1, Line: 3, Kind: "plain", Children: []shape{}},
				}},
			},
		},
		{
			name:  "blank_lines_counted",
			input: "a\n\n\n  b\n\nc\n\n",
			expected: []shape{
				{Text: "a", Depth: 0, Line: 1, Kind: "plain", Children: []shape{
					{Text: "b", Depth: 1, Line: 4, Blanks: 2, Kind: "plain", Children: []shape{}},
				}},
				{Text: "c", Depth: 0, Line: 6, Blanks: 1, Kind: "plain", Children: []shape{}},
			},
		},
		{
			name:  "comment_swallows_subtree",
			input: "/ header\n  div#x\n    - if y\np\n",
			expected: []shape{
				{Text: "/ header", Depth: 0, Line: 1, Kind: "comment", Children: []shape{
					{Text: "div#x", Depth: 1, Line: 2, Kind: "comment-block", Children: []shape{
						{Text: "- if y", Depth: 2, Line: 3, Kind: "comment-block", Children: []shape{}},
					}},
				}},
				{Text: "p", Depth: 0, Line: 4, Kind: "plain", Children: []shape{}},
			},
		},
		{
			name:  "embedded_block",
			input: "css:\n  .a {\n    color: red;\n  }\n",
			expected: []shape{
				{Text: "css:", Depth: 0, Line: 1, Kind: "embedded", Children: []shape{
					{Text: ".a {", Depth: 1, Line: 2, Kind: "embedded-block", Children: []shape{
						{Text: "color: red;", Depth: 2, Line: 3, Kind: "embedded-block", Children: []shape{}},
					}},
					{Text: "}", Depth: 1, Line: 4, Kind: "embedded-block", Children: []shape{}},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := slim.Build(slim.SplitLines(tt.input))
			require.True(t, root.IsRoot())
			assert.Equal(t, -1, root.Depth)

			if d := diff.DiffExportedOnly(tt.expected, shapeOf(root)); d != "" {
				t.Errorf("unexpected tree shape: %s", d)
			}
		})
	}
}

func TestBuildKeepsFragmentsUnderPropagation(t *testing.T) {
	root := slim.Build(slim.SplitLines("/ old\n  div#kept.x\n"))
	require.Len(t, root.Children, 1)
	require.Len(t, root.Children[0].Children, 1)

	child := root.Children[0].Children[0]
	assert.Equal(t, slim.KindCommentBlock, child.Kind)
	assert.Equal(t, "kept", child.ID)
	assert.Equal(t, "div", child.Tag)
	assert.Equal(t, root.Children[0], child.Opener())
}

func TestDepthInvariant(t *testing.T) {
	inputs := []string{
		"a\n  b\n c\n   d\n\t e\n f\ng\n",
		"\t\ta\n  b\n    c\n\td\n",
		"css:\n      x\n   y\n  z\nq\n        r\n",
		"  \n\n   x\n y\n",
	}

	for _, input := range inputs {
		root := slim.Build(slim.SplitLines(input))
		prev := 0
		root.Walk(func(n *slim.Node) bool {
			for _, c := range n.Children {
				assert.Equal(t, n.Depth+1, c.Depth, "line %d", c.Line)
				assert.Same(t, n, c.Parent())
				if !n.IsRoot() {
					assert.Greater(t, c.Indent, n.Indent, "line %d", c.Line)
				}
			}
			if !n.IsRoot() {
				assert.Greater(t, n.Line, prev)
				prev = n.Line
			}
			return true
		})
	}
}

func TestNodeHelpers(t *testing.T) {
	root := slim.Build(slim.SplitLines("div\n  p(\n    a)\n  span\nfooter#end\n"))
	require.Len(t, root.Children, 2)

	div := root.Children[0]
	assert.Equal(t, "div\n  p(\n    a)\n  span", div.SubtreeContent())
	assert.Equal(t, 4, div.LastLine())
	assert.Equal(t, "div", div.Label())
	assert.Equal(t, "#end footer", root.Children[1].Label())
	assert.Len(t, root.Flatten(), 5)
}

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("builds_document", func(t *testing.T) {
		doc, err := slim.Parse(ctx, "html\n  body\n")
		require.NoError(t, err)
		assert.Equal(t, 3, doc.LineCount())
		assert.Len(t, doc.Nodes(), 2)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		doc, err := slim.Parse(cctx, "html\n")
		require.Error(t, err)
		assert.Nil(t, doc)
	})
}
