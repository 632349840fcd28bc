package stylesheet

import (
	"context"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"gitlab.com/tozd/go/errors"
)

// Lexer extracts symbols from scss-like text by following the token stream
// and a stack of open braces. Nested rules become children of the rule that
// contains them, and top-level or nested $variables become variable symbols.
type Lexer struct{}

func NewLexer() *Lexer {
	return &Lexer{}
}

type cursor struct {
	line, col int
}

func (c *cursor) advance(data []byte) {
	for _, b := range data {
		if b == '\n' {
			c.line++
			c.col = 0
		} else {
			c.col++
		}
	}
}

type frame struct {
	sym Symbol
}

func (lx *Lexer) Symbols(ctx context.Context, req Request) ([]Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("scss symbols canceled before start: %w", err)
	}

	l := css.NewLexer(parse.NewInputString(req.Text))

	var (
		pos     cursor
		prelude strings.Builder
		start   cursor
		stack   []*frame
		top     = make([]Symbol, 0)
	)

	appendSymbol := func(sym Symbol) {
		if len(stack) == 0 {
			top = append(top, sym)
			return
		}
		parent := &stack[len(stack)-1].sym
		parent.Children = append(parent.Children, sym)
	}

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, errors.Errorf("lexing %s: %w", req.Name, err)
			}
			break
		}

		switch tt {
		case css.CommentToken:
		case css.WhitespaceToken:
			if prelude.Len() > 0 {
				prelude.WriteByte(' ')
			}
		case css.LeftBraceToken:
			name := collapseSpace(prelude.String())
			stack = append(stack, &frame{sym: Symbol{
				Name:     name,
				Kind:     atRuleKind(name),
				Range:    Range{StartLine: start.line, StartCol: start.col},
				Children: []Symbol{},
			}})
			prelude.Reset()
		case css.RightBraceToken:
			prelude.Reset()
			if len(stack) == 0 {
				break
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			f.sym.Range.EndLine, f.sym.Range.EndCol = pos.line, pos.col+1
			if f.sym.Name != "" {
				appendSymbol(f.sym)
			}
		case css.SemicolonToken:
			if name := collapseSpace(prelude.String()); strings.HasPrefix(name, "$") {
				if colon := strings.IndexByte(name, ':'); colon > 0 {
					appendSymbol(Symbol{
						Name:     strings.TrimSpace(name[:colon]),
						Kind:     KindVariable,
						Range:    Range{StartLine: start.line, StartCol: start.col, EndLine: pos.line, EndCol: pos.col + 1},
						Children: []Symbol{},
					})
				}
			}
			prelude.Reset()
		default:
			if prelude.Len() == 0 {
				start = pos
			}
			prelude.Write(data)
		}

		pos.advance(data)

		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("scss symbols canceled: %w", err)
		}
	}

	// unbalanced braces close at the end of the text
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.sym.Range.EndLine, f.sym.Range.EndCol = pos.line, pos.col
		if f.sym.Name != "" {
			appendSymbol(f.sym)
		}
	}

	return top, nil
}
