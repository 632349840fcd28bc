package semtok

import (
	"github.com/walteh/goslim/pkg/position"
)

// TokenType represents the syntactic role of a token
type TokenType uint32

const (
	// TokenTag is the element name at the start of a line (e.g., div)
	TokenTag TokenType = iota + 1

	// TokenID is an id shorthand (e.g., #main)
	TokenID

	// TokenClass is a class shorthand (e.g., .btn)
	TokenClass

	// TokenAttributeName is the key of a key=value pair
	TokenAttributeName

	// TokenAttributeValue is the value of a key=value pair, quotes included
	TokenAttributeValue

	// TokenBooleanAttribute is a valueless attribute (e.g., disabled)
	TokenBooleanAttribute

	// TokenAttribute is the interior of a [...] group
	TokenAttribute

	// TokenOperator is a bracket delimiter
	TokenOperator

	// TokenText is literal inline text
	TokenText

	// TokenVariable is an interpolation (e.g., #{name})
	TokenVariable

	TokenComment
	TokenDoctype

	// TokenLogic is server-side code after a logic marker
	TokenLogic

	// TokenEmbedded is a line of an embedded foreign-language block
	TokenEmbedded
)

var tokenTypeNames = []string{
	"tag",
	"id",
	"class",
	"attribute-name",
	"attribute-value",
	"boolean-attribute",
	"attribute",
	"operator",
	"text",
	"variable",
	"comment",
	"doctype",
	"logic",
	"embedded",
}

// String returns the legend name of the token type
func (t TokenType) String() string {
	if t == 0 || int(t) > len(tokenTypeNames) {
		return "unknown"
	}
	return tokenTypeNames[t-1]
}

// TokenModifier is a bit set of additional characteristics
type TokenModifier uint32

const ModifierNone TokenModifier = 0

const (
	// ModifierDeclaration marks a token that introduces a name (ids)
	ModifierDeclaration TokenModifier = 1 << iota

	// ModifierReadonly marks literal values
	ModifierReadonly

	// ModifierStatic marks tokens whose content is never evaluated
	ModifierStatic
)

var tokenModifierNames = []string{
	"declaration",
	"readonly",
	"static",
}

// String returns a human-readable representation of the token modifier
func (m TokenModifier) String() string {
	switch m {
	case ModifierNone:
		return "none"
	case ModifierDeclaration:
		return "declaration"
	case ModifierReadonly:
		return "readonly"
	case ModifierStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Token represents a syntax range with its type, modifiers, and position
type Token struct {
	// Type indicates the syntactic role of the token
	Type TokenType

	// Modifier indicates any special characteristics
	Modifier TokenModifier

	// Range is the token's text and byte offset in the raw line
	Range position.RawPosition
}

// LineTokens groups the tokens of one source line.
type LineTokens struct {
	// Line is 1-based
	Line   int
	Raw    string
	Tokens []Token
}
