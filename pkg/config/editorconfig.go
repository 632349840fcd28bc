package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const editorconfigName = ".editorconfig"

// indentation is what goslim takes from .editorconfig. Empty means unset.
type indentation struct {
	Style string
	Size  string
}

// editorconfigFor merges the .editorconfig files above target, nearest first,
// stopping at one marked root.
func editorconfigFor(fs afero.Fs, target string) (indentation, error) {
	var out indentation

	dir := filepath.Dir(filepath.Clean(target))
	for {
		path := filepath.Join(dir, editorconfigName)
		data, err := afero.ReadFile(fs, path)
		switch {
		case err == nil:
			ec, err := editorconfig.Parse(bytes.NewReader(data))
			if err != nil {
				return out, errors.Errorf("parsing %s: %w", path, err)
			}

			rel, err := filepath.Rel(dir, target)
			if err != nil {
				return out, errors.Errorf("relative path of %s: %w", target, err)
			}

			def, err := ec.GetDefinitionForFilename(filepath.ToSlash(rel))
			if err != nil {
				return out, errors.Errorf("matching %s in %s: %w", rel, path, err)
			}

			if out.Style == "" {
				out.Style = def.IndentStyle
			}
			if out.Size == "" {
				out.Size = def.IndentSize
			}

			if ec.Root {
				return out, nil
			}
		case !errors.Is(err, os.ErrNotExist):
			return out, errors.Errorf("reading %s: %w", path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return out, nil
		}
		dir = parent
	}
}

func (c *Config) applyEditorconfig(ec indentation) {
	switch ec.Style {
	case editorconfig.IndentStyleTab:
		c.Render.UseTabs = true
	case editorconfig.IndentStyleSpaces:
		c.Render.UseTabs = false
	}

	if n, err := strconv.Atoi(ec.Size); err == nil && n > 0 {
		c.Render.IndentSize = n
	}
}
