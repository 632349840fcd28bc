// Package outline builds the grouped document symbol tree of a Slim document.
package outline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/walteh/goslim/pkg/position"
	"github.com/walteh/goslim/pkg/slim"
	"github.com/walteh/goslim/pkg/stylesheet"
)

const (
	GroupIDs         = "Elements with IDs"
	GroupBlocks      = "Blocks"
	GroupMajorTags   = "Major Tags"
	GroupStylesheets = "Stylesheets"
)

// Symbol is one outline entry. Ranges are 0-based.
type Symbol struct {
	Name      string
	Detail    string
	Kind      SymbolKind
	Range     position.Range
	Selection position.Range
	Children  []Symbol
}

type Options struct {
	// SortIDs orders "Elements with IDs" by id, then tag.
	SortIDs bool
	// Stylesheets resolves symbols inside css: and scss: blocks. Nil skips the
	// "Stylesheets" group.
	Stylesheets stylesheet.Service
	// StylesheetTimeout bounds each call to Stylesheets. Zero means no limit
	// beyond ctx.
	StylesheetTimeout time.Duration
	// Language drives label collation.
	Language language.Tag
}

func DefaultOptions() Options {
	return Options{
		SortIDs:           true,
		Stylesheets:       stylesheet.NewDefaultRouter(),
		StylesheetTimeout: 2 * time.Second,
		Language:          language.English,
	}
}

// Extract returns the "Elements with IDs", "Blocks" and "Major Tags" groups,
// followed by "Stylesheets" when any embedded stylesheet produced symbols.
// A failing or slow stylesheet service only drops that block's symbols.
func Extract(ctx context.Context, doc *slim.Document, opts Options) ([]Symbol, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("outline: no document")
	}

	coll := collate.New(opts.Language)
	less := func(a, b string) bool {
		return coll.CompareString(a, b) < 0
	}

	nodes := doc.Nodes()

	var ids, blocks, major []*slim.Node
	for _, n := range nodes {
		if n.Kind.IsBlockOpener() {
			blocks = append(blocks, n)
		}
		if n.Kind.IsBlockDescendant() {
			continue
		}
		if n.ID != "" {
			ids = append(ids, n)
		}
		if isMajorTag(n.Tag) {
			major = append(major, n)
		}
	}

	if opts.SortIDs {
		sort.SliceStable(ids, func(i, j int) bool {
			return less(ids[i].ID+"#"+ids[i].Tag, ids[j].ID+"#"+ids[j].Tag)
		})
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return less(blocks[i].Label(), blocks[j].Label())
	})
	sort.SliceStable(major, func(i, j int) bool {
		return less(majorTagLabel(major[i]), majorTagLabel(major[j]))
	})

	groups := []Symbol{
		group(doc, GroupIDs, nodeSymbols(ids)),
		group(doc, GroupBlocks, nodeSymbols(blocks)),
		group(doc, GroupMajorTags, nodeSymbols(major)),
	}

	if opts.Stylesheets != nil {
		if sheets := stylesheetSymbols(ctx, doc, opts); len(sheets) > 0 {
			groups = append(groups, group(doc, GroupStylesheets, sheets))
		}
	}

	return groups, nil
}

func majorTagLabel(n *slim.Node) string {
	if n.ID != "" {
		return n.Tag + " #" + n.ID
	}
	return n.Tag
}

func group(doc *slim.Document, name string, children []Symbol) Symbol {
	last := max(doc.LineCount()-1, 0)
	lastLen := 0
	if last < len(doc.Lines) {
		lastLen = len(doc.Lines[last])
	}

	return Symbol{
		Name:      name,
		Detail:    fmt.Sprintf("%d elements", len(children)),
		Kind:      SymbolKindClass,
		Range:     position.Range{End: position.Place{Line: last, Character: lastLen}},
		Selection: position.Range{},
		Children:  children,
	}
}

func nodeSymbols(nodes []*slim.Node) []Symbol {
	out := make([]Symbol, 0, len(nodes))
	for _, n := range nodes {
		r := position.LineRange(n.Line-1, 0, len(n.Raw))
		out = append(out, Symbol{
			Name:      n.Label(),
			Detail:    fmt.Sprintf("Line %d", n.Line),
			Kind:      KindOf(n),
			Range:     r,
			Selection: r,
			Children:  []Symbol{},
		})
	}
	return out
}

func stylesheetSymbols(ctx context.Context, doc *slim.Document, opts Options) []Symbol {
	out := make([]Symbol, 0)

	for _, n := range doc.Nodes() {
		if n.Kind != slim.KindEmbedded || !n.Language.IsStylesheet() || len(n.Children) == 0 {
			continue
		}

		text := blockText(n)
		if strings.TrimSpace(text) == "" {
			continue
		}

		lang, ext := stylesheet.LanguageStylesheet, "css"
		if n.Language == slim.LanguageSCSS {
			lang, ext = stylesheet.LanguageSCSS, "scss"
		}
		req := stylesheet.Request{
			Name:     fmt.Sprintf("slim-%s.%s", uuid.NewString(), ext),
			Text:     text,
			Language: lang,
		}

		syms, err := callService(ctx, opts, req)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int("line", n.Line).Str("request", req.Name).Msg("skipping stylesheet symbols")
			continue
		}

		base := n.Children[0].Line - 1
		out = append(out, remap(doc, base, syms)...)
	}

	return out
}

func callService(ctx context.Context, opts Options, req stylesheet.Request) ([]stylesheet.Symbol, error) {
	ctx = zerolog.Ctx(ctx).With().Str("request", req.Name).Logger().WithContext(ctx)

	if opts.StylesheetTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.StylesheetTimeout)
		defer cancel()
	}

	type result struct {
		syms []stylesheet.Symbol
		err  error
	}
	done := make(chan result, 1)
	go func() {
		syms, err := opts.Stylesheets.Symbols(ctx, req)
		done <- result{syms, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, errors.Errorf("stylesheet symbols for %s: %w", req.Name, r.err)
		}
		return r.syms, nil
	case <-ctx.Done():
		return nil, errors.Errorf("stylesheet symbols for %s: %w", req.Name, ctx.Err())
	}
}

// blockText joins the trimmed lines under an embedded opener. Blank lines
// between them are kept so that local line i is document line
// firstChild.Line+i.
func blockText(opener *slim.Node) string {
	var b strings.Builder
	for i, d := range opener.Flatten() {
		if i > 0 {
			for j := 0; j < d.BlankLinesAbove; j++ {
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
		}
		b.WriteString(d.Trimmed)
	}
	return b.String()
}

// remap moves local stylesheet coordinates into the document. Columns are
// shifted by the indentation that trimming removed.
func remap(doc *slim.Document, base int, syms []stylesheet.Symbol) []Symbol {
	out := make([]Symbol, 0, len(syms))
	for _, s := range syms {
		start := place(doc, base+s.Range.StartLine, s.Range.StartCol)
		end := place(doc, base+s.Range.EndLine, s.Range.EndCol)
		r := position.Range{Start: start, End: end}
		out = append(out, Symbol{
			Name:      s.Name,
			Detail:    fmt.Sprintf("Line %d", start.Line+1),
			Kind:      SymbolKind(s.Kind),
			Range:     r,
			Selection: r,
			Children:  remap(doc, base, s.Children),
		})
	}
	return out
}

func place(doc *slim.Document, line, col int) position.Place {
	if line >= 0 && line < len(doc.Lines) {
		raw := doc.Lines[line]
		col += len(raw) - len(strings.TrimLeft(raw, " \t"))
	}
	return position.Place{Line: line, Character: col}
}
