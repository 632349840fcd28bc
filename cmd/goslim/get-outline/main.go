package get_outline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/goslim/pkg/outline"
	"github.com/walteh/goslim/pkg/position"
	"github.com/walteh/goslim/pkg/slim"
	"github.com/walteh/goslim/pkg/workspace"
)

type Handler struct {
	fs     afero.Fs
	out    io.Writer
	paths  []string
	format string // text, json

	noStylesheets bool
	timeout       time.Duration
}

func NewGetOutlineCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "outline [paths...]",
		Short: "print the document symbols of slim templates",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().StringVar(&me.format, "format", "text", "the format of the outline (text, json)")
	cmd.Flags().BoolVar(&me.noStylesheets, "no-stylesheets", false, "skip symbols inside css: and scss: blocks")
	cmd.Flags().DurationVar(&me.timeout, "stylesheet-timeout", 0, "limit for each stylesheet block, zero uses configuration")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.paths = args
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context())
	}

	return cmd
}

type jsonSymbol struct {
	Name      string         `json:"name"`
	Detail    string         `json:"detail"`
	Kind      int            `json:"kind"`
	Range     position.Range `json:"range"`
	Selection position.Range `json:"selectionRange"`
	Children  []jsonSymbol   `json:"children"`
}

func toJSON(syms []outline.Symbol) []jsonSymbol {
	out := make([]jsonSymbol, 0, len(syms))
	for _, s := range syms {
		out = append(out, jsonSymbol{
			Name:      s.Name,
			Detail:    s.Detail,
			Kind:      int(s.Kind),
			Range:     s.Range,
			Selection: s.Selection,
			Children:  toJSON(s.Children),
		})
	}
	return out
}

func (me *Handler) Run(ctx context.Context) error {
	if me.format != "text" && me.format != "json" {
		return errors.Errorf("unknown format %q", me.format)
	}

	files, errs := workspace.Collect(ctx, me.fs, me.paths)

	asJSON := map[string][]jsonSymbol{}
	for _, file := range files {
		doc, err := slim.Parse(ctx, file.Text)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("parsing %s: %w", file.Path, err))
			continue
		}

		opts := file.Config.Outline
		if me.noStylesheets {
			opts.Stylesheets = nil
		}
		if me.timeout > 0 {
			opts.StylesheetTimeout = me.timeout
		}

		syms, err := outline.Extract(ctx, doc, opts)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("outlining %s: %w", file.Path, err))
			continue
		}

		if me.format == "json" {
			asJSON[file.Path] = toJSON(syms)
			continue
		}

		fmt.Fprintf(me.out, "# %s\n", file.Path)
		printTree(me.out, syms, 0)
	}

	if me.format == "json" {
		enc := json.NewEncoder(me.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(asJSON); err != nil {
			return errors.Errorf("writing outline: %w", err)
		}
	}

	return errs
}

func printTree(w io.Writer, syms []outline.Symbol, depth int) {
	for _, s := range syms {
		fmt.Fprintf(w, "%s%s [%s] %s\n", strings.Repeat("  ", depth), s.Name, s.Kind, s.Detail)
		printTree(w, s.Children, depth+1)
	}
}
