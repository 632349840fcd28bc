package slim

import (
	"strings"
)

// RenderOptions controls canonical indentation.
type RenderOptions struct {
	// IndentSize is the number of spaces per level when UseTabs is false.
	IndentSize int
	UseTabs    bool
	// PreserveForeignIndentation keeps the relative indentation of embedded
	// block lines beneath their opener instead of re-indenting them.
	PreserveForeignIndentation bool
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{IndentSize: 2}
}

func (o RenderOptions) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	if o.UseTabs {
		return strings.Repeat("\t", depth)
	}
	size := o.IndentSize
	if size <= 0 {
		size = DefaultRenderOptions().IndentSize
	}
	return strings.Repeat(" ", depth*size)
}

// Render writes the document back out with canonical indentation. Blank line
// runs between nodes are kept; trailing blank lines are not. Rendering the
// parse of its own output yields the same string.
func Render(doc *Document, opts RenderOptions) string {
	if doc == nil || doc.Root == nil {
		return ""
	}

	var b strings.Builder
	baselines := map[*Node]int{}

	doc.Root.Walk(func(n *Node) bool {
		if n.IsRoot() {
			return true
		}

		for i := 0; i < n.BlankLinesAbove; i++ {
			b.WriteByte('\n')
		}

		if opener := n.Opener(); opts.PreserveForeignIndentation && n.Kind == KindEmbeddedBlock && opener != nil {
			base, ok := baselines[opener]
			if !ok {
				base = minChildIndent(opener)
				baselines[opener] = base
			}
			b.WriteString(opts.indent(opener.Depth + 1))
			if extra := n.Indent - base; extra > 0 {
				b.WriteString(strings.Repeat(" ", extra))
			}
		} else {
			b.WriteString(opts.indent(n.Depth))
		}

		b.WriteString(n.Trimmed)
		b.WriteByte('\n')
		return true
	})

	return b.String()
}

func minChildIndent(n *Node) int {
	if len(n.Children) == 0 {
		return 0
	}
	m := n.Children[0].Indent
	for _, c := range n.Children[1:] {
		if c.Indent < m {
			m = c.Indent
		}
	}
	return m
}
