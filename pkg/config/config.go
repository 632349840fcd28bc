// Package config loads goslim settings from .goslim.hcl or .goslim.yaml and
// .editorconfig, and resolves them into options for each package.
package config

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/goslim/pkg/diagnostic"
	"github.com/walteh/goslim/pkg/folding"
	"github.com/walteh/goslim/pkg/outline"
	"github.com/walteh/goslim/pkg/slim"
)

const (
	FileNameHCL  = ".goslim.hcl"
	FileNameYAML = ".goslim.yaml"
	FileNameYML  = ".goslim.yml"
)

// FileNames are searched in this order in every directory.
var FileNames = []string{FileNameHCL, FileNameYAML, FileNameYML}

// File is the on-disk configuration. Every field is optional; unset fields
// keep whatever the layer below supplied.
type File struct {
	Format  *FormatBlock  `hcl:"format,block" yaml:"format,omitempty"`
	Lint    *LintBlock    `hcl:"lint,block" yaml:"lint,omitempty"`
	Folding *FoldingBlock `hcl:"folding,block" yaml:"folding,omitempty"`
	Outline *OutlineBlock `hcl:"outline,block" yaml:"outline,omitempty"`
}

type FormatBlock struct {
	IndentSize                 *int  `hcl:"indent_size,optional" yaml:"indent_size,omitempty" validate:"omitempty,min=1,max=16"`
	UseTabs                    *bool `hcl:"use_tabs,optional" yaml:"use_tabs,omitempty"`
	PreserveForeignIndentation *bool `hcl:"preserve_foreign_indentation,optional" yaml:"preserve_foreign_indentation,omitempty"`
}

type LintBlock struct {
	Enabled             *bool    `hcl:"enabled,optional" yaml:"enabled,omitempty"`
	ValidateSyntax      *bool    `hcl:"validate_syntax,optional" yaml:"validate_syntax,omitempty"`
	ValidateIndentation *bool    `hcl:"validate_indentation,optional" yaml:"validate_indentation,omitempty"`
	ValidateLogic       *bool    `hcl:"validate_logic,optional" yaml:"validate_logic,omitempty"`
	ValidateIDs         *bool    `hcl:"validate_ids,optional" yaml:"validate_ids,omitempty"`
	WarnEmptyTags       *bool    `hcl:"warn_empty_tags,optional" yaml:"warn_empty_tags,omitempty"`
	DisabledRules       []string `hcl:"disabled_rules,optional" yaml:"disabled_rules,omitempty" validate:"dive,oneof=invalid-tag-syntax unclosed-brackets invalid-attribute-syntax inconsistent-indentation duplicate-id empty-tag invalid-logic-syntax"`
}

type FoldingBlock struct {
	MinLines *int `hcl:"min_lines,optional" yaml:"min_lines,omitempty" validate:"omitempty,min=0"`
}

type OutlineBlock struct {
	SortIDs           *bool   `hcl:"sort_ids,optional" yaml:"sort_ids,omitempty"`
	Stylesheets       *bool   `hcl:"stylesheets,optional" yaml:"stylesheets,omitempty"`
	StylesheetTimeout *string `hcl:"stylesheet_timeout,optional" yaml:"stylesheet_timeout,omitempty"`
}

// Config is the resolved configuration for one file or directory.
type Config struct {
	// Path is the config file that was applied, empty when none was found.
	Path string

	Render       slim.RenderOptions
	Lint         diagnostic.Options
	FoldMinLines int
	Outline      outline.Options
}

func Default() *Config {
	return &Config{
		Render:       slim.DefaultRenderOptions(),
		Lint:         diagnostic.DefaultOptions(),
		FoldMinLines: folding.DefaultMinLines,
		Outline:      outline.DefaultOptions(),
	}
}

// Load reads a config file. YAML is chosen by extension, anything else is
// parsed as HCL.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var cfg File
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		return &cfg, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg File
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// Discover walks up from dir and returns the first config file found, or ""
// when there is none. dir should be absolute.
func Discover(fs afero.Fs, dir string) (string, error) {
	dir = filepath.Clean(dir)
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			ok, err := afero.Exists(fs, candidate)
			if err != nil {
				return "", errors.Errorf("checking %s: %w", candidate, err)
			}
			if ok {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve layers defaults, .editorconfig and the nearest config file for
// target, which may be a file or a directory.
func Resolve(ctx context.Context, fs afero.Fs, target string) (*Config, error) {
	dir, isFile := target, false
	if info, err := fs.Stat(target); err == nil && !info.IsDir() {
		dir, isFile = filepath.Dir(target), true
	}

	cfg := Default()

	if isFile {
		ec, err := editorconfigFor(fs, target)
		if err != nil {
			return nil, err
		}
		cfg.applyEditorconfig(ec)
	}

	path, err := Discover(fs, dir)
	if err != nil {
		return nil, err
	}

	if path != "" {
		file, err := Load(fs, path)
		if err != nil {
			return nil, errors.Errorf("loading %s: %w", path, err)
		}
		if err := file.Validate(); err != nil {
			return nil, errors.Errorf("invalid config %s: %w", path, err)
		}
		if err := cfg.apply(file); err != nil {
			return nil, errors.Errorf("applying %s: %w", path, err)
		}
		cfg.Path = path
	}

	cfg.Lint.IndentSize = cfg.Render.IndentSize
	cfg.Lint.UseTabs = cfg.Render.UseTabs

	zerolog.Ctx(ctx).Debug().
		Str("target", target).
		Str("config", cfg.Path).
		Int("indent_size", cfg.Render.IndentSize).
		Bool("use_tabs", cfg.Render.UseTabs).
		Msg("resolved configuration")

	return cfg, nil
}

func (c *Config) apply(f *File) error {
	if b := f.Format; b != nil {
		setInt(&c.Render.IndentSize, b.IndentSize)
		setBool(&c.Render.UseTabs, b.UseTabs)
		setBool(&c.Render.PreserveForeignIndentation, b.PreserveForeignIndentation)
	}

	if b := f.Lint; b != nil {
		setBool(&c.Lint.Enabled, b.Enabled)
		setBool(&c.Lint.ValidateSyntax, b.ValidateSyntax)
		setBool(&c.Lint.ValidateIndentation, b.ValidateIndentation)
		setBool(&c.Lint.ValidateLogic, b.ValidateLogic)
		setBool(&c.Lint.ValidateIDs, b.ValidateIDs)
		setBool(&c.Lint.WarnEmptyTags, b.WarnEmptyTags)
		if b.DisabledRules != nil {
			c.Lint.DisabledRules = append([]string(nil), b.DisabledRules...)
		}
	}

	if b := f.Folding; b != nil {
		setInt(&c.FoldMinLines, b.MinLines)
	}

	if b := f.Outline; b != nil {
		setBool(&c.Outline.SortIDs, b.SortIDs)
		if b.Stylesheets != nil && !*b.Stylesheets {
			c.Outline.Stylesheets = nil
		}
		if b.StylesheetTimeout != nil {
			d, err := time.ParseDuration(*b.StylesheetTimeout)
			if err != nil {
				return errors.Errorf("outline.stylesheet_timeout: %w", err)
			}
			c.Outline.StylesheetTimeout = d
		}
	}

	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
