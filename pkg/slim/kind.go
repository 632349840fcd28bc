package slim

// Kind is the structural role of a parsed line.
type Kind int

const (
	KindPlain Kind = iota
	KindComment
	KindLogic
	KindDoctype
	// KindEmbedded opens a foreign-language block (javascript:, css:, ...).
	KindEmbedded
	// KindEmbeddedBlock is any line nested under an embedded opener.
	KindEmbeddedBlock
	// KindCommentBlock is any line nested under a comment.
	KindCommentBlock
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindComment:
		return "comment"
	case KindLogic:
		return "logic"
	case KindDoctype:
		return "doctype"
	case KindEmbedded:
		return "embedded"
	case KindEmbeddedBlock:
		return "embedded-block"
	case KindCommentBlock:
		return "comment-block"
	default:
		return "unknown"
	}
}

// IsBlockOpener reports whether lines nested under this kind are swallowed.
func (k Kind) IsBlockOpener() bool {
	return k == KindComment || k == KindEmbedded
}

// IsBlockDescendant reports whether the kind was inherited from an opener.
func (k Kind) IsBlockDescendant() bool {
	return k == KindEmbeddedBlock || k == KindCommentBlock
}

// IsForeign reports whether the line is not Slim markup at all.
func (k Kind) IsForeign() bool {
	return k.IsBlockOpener() || k.IsBlockDescendant()
}

// Language identifies the foreign language of an embedded block.
type Language int

const (
	LanguageNone Language = iota
	LanguageJavaScript
	LanguageStylesheet
	LanguageSCSS
	LanguageServerLogic
)

func (l Language) String() string {
	switch l {
	case LanguageJavaScript:
		return "javascript"
	case LanguageStylesheet:
		return "css"
	case LanguageSCSS:
		return "scss"
	case LanguageServerLogic:
		return "ruby"
	default:
		return ""
	}
}

// IsStylesheet reports whether the language can be handed to a stylesheet symbol service.
func (l Language) IsStylesheet() bool {
	return l == LanguageStylesheet || l == LanguageSCSS
}

var embeddedOpeners = map[string]Language{
	"javascript": LanguageJavaScript,
	"css":        LanguageStylesheet,
	"scss":       LanguageSCSS,
	"sass":       LanguageSCSS,
	"ruby":       LanguageServerLogic,
}

// Propagate returns the effective kind of a child attached under a parent.
// Everything below a comment is comment text and everything below an
// embedded opener is raw text of the opener's language, whatever the child
// line looks like on its own.
func Propagate(parentKind Kind, parentLang Language, childKind Kind, childLang Language) (Kind, Language) {
	switch parentKind {
	case KindComment, KindCommentBlock:
		return KindCommentBlock, LanguageNone
	case KindEmbedded, KindEmbeddedBlock:
		return KindEmbeddedBlock, parentLang
	default:
		return childKind, childLang
	}
}
