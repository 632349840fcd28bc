package outline

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/walteh/goslim/pkg/slim"
)

// SymbolKind uses the editor symbol kind numbering.
type SymbolKind int

const (
	SymbolKindFile      SymbolKind = 1
	SymbolKindModule    SymbolKind = 2
	SymbolKindNamespace SymbolKind = 3
	SymbolKindClass     SymbolKind = 5
	SymbolKindField     SymbolKind = 8
	SymbolKindFunction  SymbolKind = 12
	SymbolKindVariable  SymbolKind = 13
	SymbolKindString    SymbolKind = 15
	SymbolKindEvent     SymbolKind = 24
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolKindFile:
		return "file"
	case SymbolKindModule:
		return "module"
	case SymbolKindNamespace:
		return "namespace"
	case SymbolKindClass:
		return "class"
	case SymbolKindField:
		return "field"
	case SymbolKindFunction:
		return "function"
	case SymbolKindVariable:
		return "variable"
	case SymbolKindString:
		return "string"
	case SymbolKindEvent:
		return "event"
	default:
		return "unknown"
	}
}

var tagKinds = map[atom.Atom]SymbolKind{
	atom.Button:   SymbolKindField,
	atom.Input:    SymbolKindField,
	atom.Select:   SymbolKindField,
	atom.Textarea: SymbolKindField,
	atom.A:        SymbolKindFunction,
	atom.H1:       SymbolKindClass,
	atom.H2:       SymbolKindClass,
	atom.H3:       SymbolKindClass,
	atom.H4:       SymbolKindClass,
	atom.H5:       SymbolKindClass,
	atom.H6:       SymbolKindClass,
	atom.P:        SymbolKindString,
	atom.Span:     SymbolKindString,
	atom.Div:      SymbolKindString,
	atom.Form:     SymbolKindModule,
	atom.Nav:      SymbolKindNamespace,
	atom.Header:   SymbolKindNamespace,
	atom.Footer:   SymbolKindNamespace,
	atom.Main:     SymbolKindNamespace,
	atom.Section:  SymbolKindNamespace,
	atom.Article:  SymbolKindNamespace,
	atom.Aside:    SymbolKindNamespace,
}

// KindOf picks the symbol kind shown for a node.
func KindOf(n *slim.Node) SymbolKind {
	switch n.Kind {
	case slim.KindEmbedded:
		return SymbolKindFile
	case slim.KindComment:
		return SymbolKindEvent
	}
	if k, ok := tagKinds[atom.Lookup([]byte(strings.ToLower(n.Tag)))]; ok {
		return k
	}
	return SymbolKindVariable
}

// majorTags are the structural elements listed under "Major Tags".
var majorTags = map[atom.Atom]bool{
	atom.Article: true,
	atom.Div:     true,
	atom.Footer:  true,
	atom.Form:    true,
	atom.Header:  true,
	atom.Main:    true,
	atom.Nav:     true,
	atom.Ol:      true,
	atom.Script:  true,
	atom.Section: true,
	atom.Style:   true,
	atom.Table:   true,
	atom.Ul:      true,
}

func isMajorTag(tag string) bool {
	return majorTags[atom.Lookup([]byte(tag))]
}
