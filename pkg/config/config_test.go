package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/goslim/pkg/config"
	"github.com/walteh/goslim/pkg/diagnostic"
	"github.com/walteh/goslim/pkg/slim"
)

const fullHCL = `
format {
  indent_size                  = 4
  preserve_foreign_indentation = true
}

lint {
  warn_empty_tags = true
  disabled_rules  = ["duplicate-id"]
}

folding {
  min_lines = 3
}

outline {
  sort_ids           = false
  stylesheets        = false
  stylesheet_timeout = "500ms"
}
`

const fullYAML = `
format:
  indent_size: 4
  preserve_foreign_indentation: true
lint:
  warn_empty_tags: true
  disabled_rules: [duplicate-id]
folding:
  min_lines: 3
outline:
  sort_ids: false
  stylesheets: false
  stylesheet_timeout: 500ms
`

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestResolveDefaults(t *testing.T) {
	fs := newFs(t, map[string]string{"/proj/page.slim": "div\n"})

	cfg, err := config.Resolve(context.Background(), fs, "/proj/page.slim")
	require.NoError(t, err)

	assert.Empty(t, cfg.Path)
	assert.Equal(t, slim.DefaultRenderOptions(), cfg.Render)
	assert.Equal(t, diagnostic.DefaultOptions(), cfg.Lint)
	assert.Equal(t, 5, cfg.FoldMinLines)
	assert.True(t, cfg.Outline.SortIDs)
	assert.NotNil(t, cfg.Outline.Stylesheets)
	assert.Equal(t, 2*time.Second, cfg.Outline.StylesheetTimeout)
}

func TestResolveFile(t *testing.T) {
	tests := []struct {
		name       string
		configName string
		content    string
	}{
		{name: "hcl", configName: "/proj/.goslim.hcl", content: fullHCL},
		{name: "yaml", configName: "/proj/.goslim.yaml", content: fullYAML},
		{name: "yml", configName: "/proj/.goslim.yml", content: fullYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t, map[string]string{
				tt.configName:              tt.content,
				"/proj/views/a/page.slim": "div\n",
			})

			cfg, err := config.Resolve(context.Background(), fs, "/proj/views/a/page.slim")
			require.NoError(t, err)

			assert.Equal(t, tt.configName, cfg.Path)
			assert.Equal(t, slim.RenderOptions{IndentSize: 4, PreserveForeignIndentation: true}, cfg.Render)

			assert.True(t, cfg.Lint.Enabled)
			assert.True(t, cfg.Lint.WarnEmptyTags)
			assert.Equal(t, []string{"duplicate-id"}, cfg.Lint.DisabledRules)
			assert.Equal(t, 4, cfg.Lint.IndentSize)

			assert.Equal(t, 3, cfg.FoldMinLines)

			assert.False(t, cfg.Outline.SortIDs)
			assert.Nil(t, cfg.Outline.Stylesheets)
			assert.Equal(t, 500*time.Millisecond, cfg.Outline.StylesheetTimeout)
		})
	}
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		dir      string
		expected string
	}{
		{
			name:     "none",
			files:    []string{"/proj/page.slim"},
			dir:      "/proj",
			expected: "",
		},
		{
			name:     "nearest_directory_wins",
			files:    []string{"/.goslim.yml", "/proj/.goslim.yaml", "/proj/a/b/page.slim"},
			dir:      "/proj/a/b",
			expected: "/proj/.goslim.yaml",
		},
		{
			name:     "hcl_before_yaml",
			files:    []string{"/proj/.goslim.yaml", "/proj/.goslim.hcl"},
			dir:      "/proj",
			expected: "/proj/.goslim.hcl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			for _, f := range tt.files {
				files[f] = ""
			}

			got, err := config.Discover(newFs(t, files), tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		contains []string
	}{
		{
			name:     "unknown_yaml_field",
			path:     "/c/.goslim.yaml",
			content:  "format:\n  indent: 2\n",
			contains: []string{"parsing YAML"},
		},
		{
			name:     "unknown_hcl_attribute",
			path:     "/c/.goslim.hcl",
			content:  "format {\n  indent = 2\n}\n",
			contains: []string{"decoding HCL"},
		},
		{
			name:     "broken_hcl",
			path:     "/c/.goslim.hcl",
			content:  "format {\n",
			contains: []string{"parsing HCL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t, map[string]string{tt.path: tt.content})

			_, err := config.Load(fs, tt.path)
			require.Error(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, err.Error(), c)
			}
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	fs := newFs(t, map[string]string{"/c/.goslim.yaml": ""})

	file, err := config.Load(fs, "/c/.goslim.yaml")
	require.NoError(t, err)
	assert.Equal(t, &config.File{}, file)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/c/.goslim.hcl": `
format {
  indent_size = 0
}
lint {
  disabled_rules = ["duplicate-id", "nope"]
}
folding {
  min_lines = -1
}
outline {
  stylesheet_timeout = "soon"
}
`,
		"/c/page.slim": "div\n",
	})

	file, err := config.Load(fs, "/c/.goslim.hcl")
	require.NoError(t, err)

	err = file.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 errors occurred")
	assert.Contains(t, err.Error(), "format.indent_size: must be at least 1")
	assert.Contains(t, err.Error(), `lint.disabled_rules[1]: unknown value "nope"`)
	assert.Contains(t, err.Error(), "folding.min_lines: must be at least 0")
	assert.Contains(t, err.Error(), "outline.stylesheet_timeout")

	_, err = config.Resolve(context.Background(), fs, "/c/page.slim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config /c/.goslim.hcl")
}

func TestResolveEditorconfig(t *testing.T) {
	const editorconfig = "root = true\n\n[*.slim]\nindent_style = tab\nindent_size = 4\n\n[*.md]\nindent_size = 8\n"

	tests := []struct {
		name     string
		files    map[string]string
		target   string
		expected slim.RenderOptions
	}{
		{
			name: "editorconfig_only",
			files: map[string]string{
				"/proj/.editorconfig":    editorconfig,
				"/proj/views/page.slim": "div\n",
			},
			target:   "/proj/views/page.slim",
			expected: slim.RenderOptions{IndentSize: 4, UseTabs: true},
		},
		{
			name: "config_file_wins",
			files: map[string]string{
				"/proj/.editorconfig":    editorconfig,
				"/proj/.goslim.hcl":      "format {\n  indent_size = 2\n}\n",
				"/proj/views/page.slim": "div\n",
			},
			target:   "/proj/views/page.slim",
			expected: slim.RenderOptions{IndentSize: 2, UseTabs: true},
		},
		{
			name: "nearer_editorconfig_wins",
			files: map[string]string{
				"/proj/.editorconfig":       editorconfig,
				"/proj/views/.editorconfig": "[*]\nindent_style = space\n",
				"/proj/views/page.slim":     "div\n",
			},
			target:   "/proj/views/page.slim",
			expected: slim.RenderOptions{IndentSize: 4, UseTabs: false},
		},
		{
			name: "unmatched_section",
			files: map[string]string{
				"/proj/.editorconfig": editorconfig,
				"/proj/README.md":     "# x\n",
			},
			target:   "/proj/README.md",
			expected: slim.RenderOptions{IndentSize: 8},
		},
		{
			name: "directories_ignore_editorconfig",
			files: map[string]string{
				"/proj/.editorconfig":    editorconfig,
				"/proj/views/page.slim": "div\n",
			},
			target:   "/proj/views",
			expected: slim.DefaultRenderOptions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Resolve(context.Background(), newFs(t, tt.files), tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Render)
			assert.Equal(t, tt.expected.UseTabs, cfg.Lint.UseTabs)
		})
	}
}
