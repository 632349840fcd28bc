package get_folds

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const list = "ul\n  li\n  li\n  li\n  li\n  li\n"

func TestGetFoldsCommand(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		args     []string
		expected string
	}{
		{
			name:     "default_threshold",
			args:     []string{"/f/list.slim"},
			expected: "# /f/list.slim\n1-6 ul\n",
		},
		{
			name:     "flag_threshold",
			args:     []string{"--min-lines", "6", "/f/list.slim"},
			expected: "# /f/list.slim\n",
		},
		{
			name:     "config_threshold",
			config:   "folding {\n  min_lines = 10\n}\n",
			args:     []string{"/f/list.slim"},
			expected: "# /f/list.slim\n",
		},
		{
			name:     "flag_beats_config",
			config:   "folding {\n  min_lines = 10\n}\n",
			args:     []string{"--min-lines", "3", "/f/list.slim"},
			expected: "# /f/list.slim\n1-6 ul\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/f/list.slim", []byte(list), 0o644))
			if tt.config != "" {
				require.NoError(t, afero.WriteFile(fs, "/f/.goslim.hcl", []byte(tt.config), 0o644))
			}

			var out bytes.Buffer
			cmd := NewGetFoldsCommand(fs)
			cmd.SetArgs(tt.args)
			cmd.SetOut(&out)
			cmd.SilenceUsage = true

			require.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}
