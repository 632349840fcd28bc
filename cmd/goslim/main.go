package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	formatfilescmd "github.com/walteh/goslim/cmd/goslim/format-files"
	getfoldscmd "github.com/walteh/goslim/cmd/goslim/get-folds"
	getoutlinecmd "github.com/walteh/goslim/cmd/goslim/get-outline"
	gettokenscmd "github.com/walteh/goslim/cmd/goslim/get-tokens"
	lintfilescmd "github.com/walteh/goslim/cmd/goslim/lint-files"
	slimdebug "github.com/walteh/goslim/pkg/debug"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	var (
		logLevel string
		debugLog bool
	)

	cmd := &cobra.Command{
		Use:   "goslim",
		Short: "format, lint and inspect slim templates",
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", slimdebug.DefaultLevel.String(), "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging with callers")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logger, err := slimdebug.NewLogger(cmd.ErrOrStderr(), slimdebug.LoggerOptions{
			Level: logLevel,
			Debug: debugLog,
			Color: !color.NoColor,
		})
		if err != nil {
			return err
		}
		cmd.SetContext(logger.WithContext(cmd.Context()))
		return nil
	}

	cmd.AddCommand(formatfilescmd.NewFormatCommand(fs))
	cmd.AddCommand(lintfilescmd.NewLintCommand(fs))
	cmd.AddCommand(gettokenscmd.NewGetTokensCommand(fs))
	cmd.AddCommand(getfoldscmd.NewGetFoldsCommand(fs))
	cmd.AddCommand(getoutlinecmd.NewGetOutlineCommand(fs))

	info, ok := debug.ReadBuildInfo()
	if !ok {
		cmd.Version = "unknown"
	} else {
		cmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(cmd.Version)
		},
		Hidden: true,
	}
	cmd.AddCommand(cmdVersion)

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return cmd
}

func run(ctx context.Context, args []string) error {
	cmd := newRootCommand(afero.NewOsFs())
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
