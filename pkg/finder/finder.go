package finder

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// DefaultExtensions are matched when a directory is expanded.
var DefaultExtensions = []string{".slim"}

// TemplateFinder is responsible for finding template files
type TemplateFinder interface {
	// FindTemplates expands files, directories and doublestar patterns into
	// template files with their content loaded.
	FindTemplates(ctx context.Context, args []string) ([]FileInfo, error)
}

// FileInfo represents information about a found template file
type FileInfo struct {
	Path     string
	Content  []byte
	FileType string
}

// DefaultFinder is the default implementation of TemplateFinder
type DefaultFinder struct {
	fs         afero.Fs
	extensions []string
}

// NewDefaultFinder creates a DefaultFinder over fs. With no extensions,
// DefaultExtensions is used for directories.
func NewDefaultFinder(fs afero.Fs, extensions ...string) *DefaultFinder {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &DefaultFinder{fs: fs, extensions: extensions}
}

// FindTemplates implements TemplateFinder. Explicit file arguments are taken
// as is, whatever their extension. Every argument is tried; failures are
// combined into one error next to the files that were found.
func (f *DefaultFinder) FindTemplates(ctx context.Context, args []string) ([]FileInfo, error) {
	var (
		out  []FileInfo
		errs error
	)
	seen := map[string]bool{}

	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("finding templates: %w", err)
		}

		paths, err := f.expand(arg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		for _, path := range paths {
			if seen[path] {
				continue
			}
			seen[path] = true

			content, err := afero.ReadFile(f.fs, path)
			if err != nil {
				errs = multierr.Append(errs, errors.Errorf("reading %s: %w", path, err))
				continue
			}

			out = append(out, FileInfo{
				Path:     path,
				Content:  content,
				FileType: fileType(path),
			})
		}
	}

	return out, errs
}

func (f *DefaultFinder) expand(arg string) ([]string, error) {
	info, err := f.fs.Stat(arg)
	switch {
	case err == nil && !info.IsDir():
		return []string{arg}, nil
	case err == nil:
		var out []string
		for _, ext := range f.extensions {
			matches, err := f.glob(arg, "**/*"+ext)
			if err != nil {
				return nil, err
			}
			out = append(out, matches...)
		}
		sort.Strings(out)
		return out, nil
	case !isPattern(arg):
		return nil, errors.Errorf("finding %s: %w", arg, err)
	}

	base, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))
	matches, err := f.glob(filepath.FromSlash(base), pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no files match %s", arg)
	}
	return matches, nil
}

// glob matches pattern below dir and returns paths joined onto dir.
func (f *DefaultFinder) glob(dir, pattern string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", dir, err)
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(f.fs, abs))

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("matching %s in %s: %w", pattern, dir, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(out)
	return out, nil
}

func isPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

func fileType(path string) string {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return ext
	}
	return "slim"
}
