package diagnostic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/walteh/goslim/pkg/position"
	"github.com/walteh/goslim/pkg/slim"
)

// Lint parses text and checks it. When the document cannot be parsed the
// result is a single error at the start of the file.
func Lint(ctx context.Context, text string, opts Options) []Diagnostic {
	if !opts.Enabled {
		return []Diagnostic{}
	}

	doc, err := slim.Parse(ctx, text)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("slim document did not parse")
		return []Diagnostic{{
			Message:  fmt.Sprintf("Failed to parse Slim template: %s", err.Error()),
			Severity: SeverityError,
			Range:    position.LineRange(0, 0, 0),
			Source:   Source,
		}}
	}

	return Check(ctx, doc, opts)
}

// Check runs every enabled rule over a parsed document, in document order and
// rule order. Lines inside comments and embedded blocks only take part in
// duplicate id tracking.
func Check(ctx context.Context, doc *slim.Document, opts Options) []Diagnostic {
	out := make([]Diagnostic, 0)
	if !opts.Enabled || doc == nil || doc.Root == nil {
		return out
	}

	seen := map[string]int{}

	for _, n := range doc.Nodes() {
		foreign := n.Kind.IsForeign()

		for _, r := range rules {
			if !opts.Applies(r.code) {
				continue
			}

			if r.code == RuleDuplicateID {
				if d, ok := duplicateID(seen, n); ok {
					out = append(out, d)
				}
				continue
			}

			if foreign {
				continue
			}

			f, ok := r.check(opts, n)
			if !ok {
				continue
			}
			out = append(out, Diagnostic{
				Code:     r.code,
				Message:  f.message,
				Severity: r.severity,
				Range:    f.rng,
				Source:   Source,
			})
		}
	}

	zerolog.Ctx(ctx).Debug().Int("diagnostics", len(out)).Int("lines", doc.LineCount()).Msg("linted slim document")

	return out
}

// duplicateID records the first line of every id and reports each later one.
func duplicateID(seen map[string]int, n *slim.Node) (Diagnostic, bool) {
	if n.ID == "" {
		return Diagnostic{}, false
	}
	if _, ok := seen[n.ID]; !ok {
		seen[n.ID] = n.Line
		return Diagnostic{}, false
	}
	return Diagnostic{
		Code:     RuleDuplicateID,
		Message:  fmt.Sprintf("Duplicate ID '%s'. IDs must be unique within the document.", n.ID),
		Severity: SeverityWarning,
		Range:    nodeRange(n),
		Source:   Source,
	}, true
}
