// Package workspace gathers the templates named on a command line together
// with the configuration that applies to each.
package workspace

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/goslim/pkg/config"
	"github.com/walteh/goslim/pkg/finder"
)

type File struct {
	// Path is as the user wrote it, or as expanded from their pattern.
	Path   string
	Text   string
	Config *config.Config
}

// Collect expands args and resolves settings per file. Files that could be
// loaded are returned even when others failed.
func Collect(ctx context.Context, fs afero.Fs, args []string) ([]File, error) {
	found, errs := finder.NewDefaultFinder(fs).FindTemplates(ctx, args)

	files := make([]File, 0, len(found))
	for _, f := range found {
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("resolving %s: %w", f.Path, err))
			continue
		}

		cfg, err := config.Resolve(ctx, fs, abs)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("configuring %s: %w", f.Path, err))
			continue
		}

		files = append(files, File{
			Path:   f.Path,
			Text:   string(f.Content),
			Config: cfg,
		})
	}

	zerolog.Ctx(ctx).Debug().Strs("args", args).Int("files", len(files)).Msg("collected templates")

	return files, errs
}
