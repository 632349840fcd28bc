package get_folds

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/goslim/pkg/folding"
	"github.com/walteh/goslim/pkg/slim"
	"github.com/walteh/goslim/pkg/workspace"
)

type Handler struct {
	fs       afero.Fs
	out      io.Writer
	paths    []string
	minLines int
}

func NewGetFoldsCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "folds [paths...]",
		Short: "print the folding regions of slim templates",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().IntVar(&me.minLines, "min-lines", -1, "fold blocks longer than this many lines, negative uses configuration")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.paths = args
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	files, errs := workspace.Collect(ctx, me.fs, me.paths)

	for _, file := range files {
		doc, err := slim.Parse(ctx, file.Text)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("parsing %s: %w", file.Path, err))
			continue
		}

		minLines := file.Config.FoldMinLines
		if me.minLines >= 0 {
			minLines = me.minLines
		}

		fmt.Fprintf(me.out, "# %s\n", file.Path)
		for _, r := range folding.Analyze(doc, minLines) {
			fmt.Fprintf(me.out, "%d-%d %s\n", r.StartLine, r.EndLine, r.Tag)
		}
	}

	return errs
}
