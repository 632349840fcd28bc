// Package folding computes collapsible regions from the size of each node's
// subtree.
package folding

import (
	"github.com/walteh/goslim/pkg/slim"
)

// DefaultMinLines is the subtree size a node must exceed to fold.
const DefaultMinLines = 5

// Region is a foldable line span. Lines are 1-based and inclusive.
type Region struct {
	StartLine int
	EndLine   int
	Tag       string
}

// BlockLineCount is the node's own line, the blank lines directly above it,
// and the counts of all of its children.
func BlockLineCount(n *slim.Node) int {
	count := n.BlankLinesAbove + 1
	for _, c := range n.Children {
		count += BlockLineCount(c)
	}
	return count
}

// EndLine is the last line of the node's subtree.
func EndLine(n *slim.Node) int {
	return n.LastLine()
}

// Analyze returns one region per node whose block line count exceeds
// minLines, in document order. Nested regions are reported independently and
// are never merged. A minLines below zero uses DefaultMinLines.
func Analyze(doc *slim.Document, minLines int) []Region {
	if minLines < 0 {
		minLines = DefaultMinLines
	}

	regions := make([]Region, 0)
	if doc == nil || doc.Root == nil {
		return regions
	}

	for _, n := range doc.Nodes() {
		if BlockLineCount(n) > minLines {
			regions = append(regions, Region{
				StartLine: n.Line,
				EndLine:   EndLine(n),
				Tag:       n.Tag,
			})
		}
	}

	return regions
}
