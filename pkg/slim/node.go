package slim

import (
	"strings"
)

// Node is one non-blank source line, or the synthetic root of a document.
type Node struct {
	// Raw is the unmodified source line.
	Raw string
	// Trimmed is Raw without leading and trailing whitespace.
	Trimmed string
	// Indent is the leading whitespace width, tabs counting as four columns.
	Indent int
	// Depth is the nesting level; the root sits at -1.
	Depth int
	// Line is the 1-based source line, blank lines included.
	Line int
	// BlankLinesAbove counts the blank lines directly preceding this line.
	BlankLinesAbove int

	Kind     Kind
	Language Language

	Tag        string
	ID         string
	Classes    []string
	Attributes []string

	Children []*Node

	parent *Node
}

func newRoot() *Node {
	return &Node{
		Indent: -1,
		Depth:  -1,
		Kind:   KindPlain,
	}
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot reports whether n is the synthetic document root.
func (n *Node) IsRoot() bool {
	return n.parent == nil && n.Depth < 0
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Flatten returns all descendants of n in document order, excluding n.
func (n *Node) Flatten() []*Node {
	nodes := make([]*Node, 0)
	for _, child := range n.Children {
		child.Walk(func(node *Node) bool {
			nodes = append(nodes, node)
			return true
		})
	}
	return nodes
}

// SubtreeContent joins the raw lines of n and all of its descendants.
func (n *Node) SubtreeContent() string {
	var b strings.Builder
	n.Walk(func(node *Node) bool {
		if node.IsRoot() {
			return true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(node.Raw)
		return true
	})
	return b.String()
}

// LastLine is the largest line number in the subtree rooted at n.
func (n *Node) LastLine() int {
	if len(n.Children) == 0 {
		return n.Line
	}
	return n.Children[len(n.Children)-1].LastLine()
}

// Opener returns the nearest ancestor that opened the comment or embedded
// block n belongs to, or nil when n is regular markup.
func (n *Node) Opener() *Node {
	if !n.Kind.IsBlockDescendant() {
		return nil
	}
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind.IsBlockOpener() {
			return p
		}
	}
	return nil
}

// Label names the node for outlines: the kind of a comment or embedded
// opener, otherwise the tag prefixed by its id.
func (n *Node) Label() string {
	switch n.Kind {
	case KindComment:
		return KindComment.String()
	case KindEmbedded:
		return n.Language.String()
	}
	if n.ID != "" {
		return "#" + n.ID + " " + n.Tag
	}
	return n.Tag
}

// LeadingWhitespace returns the indentation prefix of the raw line.
func (n *Node) LeadingWhitespace() string {
	return leadingWhitespace(n.Raw)
}

// Document is a parsed Slim source.
type Document struct {
	Root  *Node
	Lines []string
}

// LineCount returns the number of source lines, blank lines included.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// Nodes returns every non-root node in document order.
func (d *Document) Nodes() []*Node {
	return d.Root.Flatten()
}
