package stylesheet

import (
	"context"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"gitlab.com/tozd/go/errors"
)

const (
	cssNodeRuleSet    = "rule_set"
	cssNodeSelectors  = "selectors"
	cssNodeBlock      = "block"
	cssNodeMedia      = "media_statement"
	cssNodeSupports   = "supports_statement"
	cssNodeKeyframes  = "keyframes_statement"
	cssNodeKeyframeNm = "keyframes_name"
	cssNodeAtRule     = "at_rule"
)

// TreeSitter extracts rule sets, media and supports blocks, and keyframes
// from plain CSS using the tree-sitter grammar. Each call uses its own parser.
type TreeSitter struct{}

func NewTreeSitter() *TreeSitter {
	return &TreeSitter{}
}

func (ts *TreeSitter) Symbols(ctx context.Context, req Request) ([]Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("css symbols canceled before start: %w", err)
	}

	content := []byte(req.Text)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(css.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Errorf("tree-sitter parse of %s: %w", req.Name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		zerolog.Ctx(ctx).Debug().Msg("css contains syntax errors, extracting what parsed")
	}

	return ts.collect(root, content), nil
}

func (ts *TreeSitter) collect(parent *sitter.Node, content []byte) []Symbol {
	symbols := make([]Symbol, 0)
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		if sym, ok := ts.symbol(parent.NamedChild(i), content); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func (ts *TreeSitter) symbol(node *sitter.Node, content []byte) (Symbol, bool) {
	var name string
	var block *sitter.Node

	switch node.Type() {
	case cssNodeRuleSet:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case cssNodeSelectors:
				name = collapseSpace(child.Content(content))
			case cssNodeBlock:
				block = child
			}
		}
	case cssNodeKeyframes:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); child.Type() == cssNodeKeyframeNm {
				name = "@keyframes " + child.Content(content)
			}
		}
	case cssNodeMedia, cssNodeSupports, cssNodeAtRule:
		// the prelude is everything before the block
		end := node.EndByte()
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); child.Type() == cssNodeBlock {
				block = child
				end = child.StartByte()
			}
		}
		if block == nil {
			return Symbol{}, false
		}
		name = collapseSpace(string(content[node.StartByte():end]))
	default:
		return Symbol{}, false
	}

	if name == "" {
		return Symbol{}, false
	}

	sym := Symbol{
		Name: name,
		Kind: atRuleKind(name),
		Range: Range{
			StartLine: int(node.StartPoint().Row),
			StartCol:  int(node.StartPoint().Column),
			EndLine:   int(node.EndPoint().Row),
			EndCol:    int(node.EndPoint().Column),
		},
		Children: []Symbol{},
	}
	if block != nil && node.Type() != cssNodeRuleSet {
		sym.Children = ts.collect(block, content)
	}

	return sym, true
}
