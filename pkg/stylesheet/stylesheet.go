// Package stylesheet extracts outline symbols from embedded stylesheet text.
package stylesheet

import (
	"context"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Language tags accepted by a Service.
const (
	LanguageStylesheet = "stylesheet"
	LanguageSCSS       = "scss"
)

// Kind uses the editor symbol kind numbering.
type Kind int

const (
	KindModule   Kind = 2
	KindClass    Kind = 5
	KindFunction Kind = 12
	KindVariable Kind = 13
)

// Range is 0-based and local to the request text. End columns are exclusive.
type Range struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

type Symbol struct {
	Name     string
	Kind     Kind
	Range    Range
	Children []Symbol
}

type Request struct {
	// Name identifies the virtual document, for logging.
	Name     string
	Text     string
	Language string
}

// Service returns the symbols of a stylesheet. Implementations may block and
// must honor ctx.
type Service interface {
	Symbols(ctx context.Context, req Request) ([]Symbol, error)
}

// Router dispatches requests to a service by language tag.
type Router struct {
	services map[string]Service
}

func NewRouter() *Router {
	return &Router{services: map[string]Service{}}
}

// NewDefaultRouter serves plain stylesheets with the tree-sitter grammar and
// scss with the token stream service.
func NewDefaultRouter() *Router {
	return NewRouter().
		Handle(LanguageStylesheet, NewTreeSitter()).
		Handle(LanguageSCSS, NewLexer())
}

func (r *Router) Handle(language string, svc Service) *Router {
	r.services[language] = svc
	return r
}

func (r *Router) Symbols(ctx context.Context, req Request) ([]Symbol, error) {
	svc, ok := r.services[req.Language]
	if !ok {
		return nil, errors.Errorf("no stylesheet service for language %q", req.Language)
	}
	return svc.Symbols(ctx, req)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func atRuleKind(name string) Kind {
	switch {
	case strings.HasPrefix(name, "@keyframes"), strings.HasPrefix(name, "@-webkit-keyframes"),
		strings.HasPrefix(name, "@mixin"), strings.HasPrefix(name, "@function"):
		return KindFunction
	case strings.HasPrefix(name, "@"):
		return KindModule
	case strings.HasPrefix(name, "$"), strings.HasPrefix(name, "--"):
		return KindVariable
	default:
		return KindClass
	}
}
