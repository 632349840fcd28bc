package get_tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/goslim/pkg/position"
	"github.com/walteh/goslim/pkg/semtok"
	"github.com/walteh/goslim/pkg/slim"
	"github.com/walteh/goslim/pkg/workspace"
)

type Handler struct {
	fs     afero.Fs
	out    io.Writer
	paths  []string
	format string // text, json
}

func NewGetTokensCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "tokens [paths...]",
		Short: "print the semantic tokens of slim templates",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().StringVar(&me.format, "format", "text", "the format of the tokens (text, json)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.paths = args
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context())
	}

	return cmd
}

type encoded struct {
	Legend semtok.Legend `json:"legend"`
	Data   []uint32      `json:"data"`
}

func (me *Handler) Run(ctx context.Context) error {
	if me.format != "text" && me.format != "json" {
		return errors.Errorf("unknown format %q", me.format)
	}

	files, errs := workspace.Collect(ctx, me.fs, me.paths)

	asJSON := map[string]encoded{}
	for _, file := range files {
		doc, err := slim.Parse(ctx, file.Text)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("parsing %s: %w", file.Path, err))
			continue
		}

		lines := semtok.GetTokensForDocument(doc)

		if me.format == "json" {
			asJSON[file.Path] = encoded{Legend: semtok.NewLegend(), Data: semtok.Encode(lines)}
			continue
		}

		fmt.Fprintf(me.out, "# %s\n", file.Path)
		for _, lt := range lines {
			for _, tok := range lt.Tokens {
				fmt.Fprintln(me.out, describe(lt, tok))
			}
		}
	}

	if me.format == "json" {
		enc := json.NewEncoder(me.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(asJSON); err != nil {
			return errors.Errorf("writing tokens: %w", err)
		}
	}

	return errs
}

// describe renders one token as "line:col type[+modifier] "text"" with a
// 1-based line and character column.
func describe(lt semtok.LineTokens, tok semtok.Token) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d %s", lt.Line, position.GraphemeColumn(lt.Raw, tok.Range.Offset)+1, tok.Type)
	if tok.Modifier != semtok.ModifierNone {
		b.WriteString("+" + tok.Modifier.String())
	}
	fmt.Fprintf(&b, " %q", tok.Range.Text)
	return b.String()
}
