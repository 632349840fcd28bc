package lint_files

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/goslim/pkg/diagnostic"
	"github.com/walteh/goslim/pkg/slim"
	"github.com/walteh/goslim/pkg/workspace"
)

type Handler struct {
	fs     afero.Fs
	out    io.Writer
	paths  []string
	format string // text, vscode
	strict bool
}

func NewLintCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "report problems in slim templates",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().StringVar(&me.format, "format", "text", "the format of the diagnostics (text, vscode)")
	cmd.Flags().BoolVar(&me.strict, "strict", false, "fail on warnings as well as errors")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.paths = args
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	if me.format != "text" && me.format != "vscode" {
		return errors.Errorf("unknown format %q", me.format)
	}

	files, errs := workspace.Collect(ctx, me.fs, me.paths)

	var failing int
	vscode := map[string]json.RawMessage{}

	for _, file := range files {
		diags := diagnostic.Lint(ctx, file.Text, file.Config.Lint)

		for _, d := range diags {
			if d.Severity == diagnostic.SeverityError || (me.strict && d.Severity == diagnostic.SeverityWarning) {
				failing++
			}
		}

		if me.format == "vscode" {
			raw, err := diagnostic.NewVSCodeFormatter().Format(diags)
			if err != nil {
				errs = multierr.Append(errs, errors.Errorf("formatting diagnostics for %s: %w", file.Path, err))
				continue
			}
			vscode[file.Path] = raw
			continue
		}

		text, err := (&diagnostic.TextFormatter{
			Path:  file.Path,
			Lines: slim.SplitLines(file.Text),
			Color: !color.NoColor,
		}).Format(diags)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("formatting diagnostics for %s: %w", file.Path, err))
			continue
		}
		if _, err := me.out.Write(text); err != nil {
			return errors.Errorf("writing diagnostics: %w", err)
		}
	}

	if me.format == "vscode" {
		enc := json.NewEncoder(me.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(vscode); err != nil {
			return errors.Errorf("writing diagnostics: %w", err)
		}
	}

	if failing > 0 {
		errs = multierr.Append(errs, errors.Errorf("%d problem(s) found", failing))
	}

	return errs
}
