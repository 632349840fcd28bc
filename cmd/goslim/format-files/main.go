package format_files

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/goslim/pkg/diff"
	"github.com/walteh/goslim/pkg/slim"
	"github.com/walteh/goslim/pkg/workspace"
)

type Handler struct {
	fs    afero.Fs
	out   io.Writer
	paths []string

	write bool
	check bool
	diff  bool

	indentSize int
	useTabs    bool
	preserve   bool
}

func NewFormatCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "rewrite slim templates with canonical indentation",
		Long: "Formats files, directories and doublestar patterns. Without --write, --check or --diff " +
			"the formatted templates are printed to stdout.",
		Args: cobra.MinimumNArgs(1),
	}

	cmd.Flags().BoolVarP(&me.write, "write", "w", false, "write the result back to each file")
	cmd.Flags().BoolVar(&me.check, "check", false, "fail if any file is not formatted")
	cmd.Flags().BoolVarP(&me.diff, "diff", "d", false, "print a diff instead of the formatted template")
	cmd.Flags().IntVar(&me.indentSize, "indent-size", 2, "spaces per level, overrides configuration")
	cmd.Flags().BoolVar(&me.useTabs, "use-tabs", false, "indent with tabs, overrides configuration")
	cmd.Flags().BoolVar(&me.preserve, "preserve-foreign-indentation", false, "keep relative indentation inside embedded blocks, overrides configuration")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.paths = args
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context(), func(opts *slim.RenderOptions) {
			if cmd.Flags().Changed("indent-size") {
				opts.IndentSize = me.indentSize
			}
			if cmd.Flags().Changed("use-tabs") {
				opts.UseTabs = me.useTabs
			}
			if cmd.Flags().Changed("preserve-foreign-indentation") {
				opts.PreserveForeignIndentation = me.preserve
			}
		})
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, override func(*slim.RenderOptions)) error {
	files, errs := workspace.Collect(ctx, me.fs, me.paths)

	var unformatted []string
	for _, file := range files {
		opts := file.Config.Render
		if override != nil {
			override(&opts)
		}

		doc, err := slim.Parse(ctx, file.Text)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("parsing %s: %w", file.Path, err))
			continue
		}

		formatted := slim.Render(doc, opts)
		changed := formatted != file.Text

		zerolog.Ctx(ctx).Debug().Str("file", file.Path).Bool("changed", changed).Msg("formatted template")

		if changed {
			unformatted = append(unformatted, file.Path)
		}

		switch {
		case me.diff:
			if changed {
				fmt.Fprint(me.out, diff.Unified(file.Path, file.Text, formatted))
			}
		case me.write:
			if changed {
				if err := afero.WriteFile(me.fs, file.Path, []byte(formatted), 0o644); err != nil {
					errs = multierr.Append(errs, errors.Errorf("writing %s: %w", file.Path, err))
				}
			}
		case me.check:
			if changed {
				fmt.Fprintln(me.out, file.Path)
			}
		default:
			fmt.Fprint(me.out, formatted)
		}
	}

	if me.check && len(unformatted) > 0 {
		errs = multierr.Append(errs, errors.Errorf("%d file(s) need formatting", len(unformatted)))
	}

	return errs
}
