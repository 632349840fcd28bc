package slim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Build turns a line sequence into a node tree. It never rejects input: every
// non-blank line is attached somewhere, with the root as the fallback
// ancestor.
func Build(lines []string) *Node {
	root := newRoot()
	cursor := root
	blanks := 0

	for i, raw := range lines {
		ln := Classify(raw)
		if ln.Blank {
			blanks++
			continue
		}

		var parent *Node
		switch {
		case ln.Indent > cursor.Indent:
			parent = cursor
		case ln.Indent == cursor.Indent:
			parent = cursor.parent
		default:
			anc := cursor
			for anc.parent != nil && anc.parent.Indent >= ln.Indent {
				anc = anc.parent
			}
			parent = anc.parent
		}
		if parent == nil {
			parent = root
		}

		node := attach(parent, ln)
		node.Line = i + 1
		node.BlankLinesAbove = blanks
		blanks = 0
		cursor = node
	}

	return root
}

func attach(parent *Node, ln Line) *Node {
	kind, lang := Propagate(parent.Kind, parent.Language, ln.Kind, ln.Language)

	node := &Node{
		Raw:        ln.Raw,
		Trimmed:    ln.Trimmed,
		Indent:     ln.Indent,
		Depth:      parent.Depth + 1,
		Kind:       kind,
		Language:   lang,
		Tag:        ln.Tag,
		ID:         ln.ID,
		Classes:    ln.Classes,
		Attributes: ln.Attributes,
		parent:     parent,
	}
	parent.Children = append(parent.Children, node)
	return node
}

// Parse splits text into lines and builds its tree. The only failures are a
// done context and an unexpected internal panic.
func Parse(ctx context.Context, text string) (doc *Document, err error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("parsing slim document: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			zerolog.Ctx(ctx).Error().Interface("panic", r).Msg("slim tree builder panicked")
			doc = nil
			err = errors.Errorf("building slim tree: %s", fmt.Sprint(r))
		}
	}()

	lines := SplitLines(text)
	root := Build(lines)

	zerolog.Ctx(ctx).Trace().Int("lines", len(lines)).Int("top_level", len(root.Children)).Msg("parsed slim document")

	return &Document{Root: root, Lines: lines}, nil
}
