package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/parlami/internal/testutil"
)

func TestNewCatalogCommand_Validate(t *testing.T) {
	tmpDir := t.TempDir()
	catalogFile := testutil.CreateCatalogFile(t, tmpDir)
	brokenFile := filepath.Join(tmpDir, "broken.yml")
	require.NoError(t, os.WriteFile(brokenFile, []byte("lessons:\n  - id: greetings\n    level: 0\n"), 0644))
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "file argument",
			args: []string{"validate", catalogFile},
			want: catalogFile + " is valid: 2 lessons in 2 levels\n",
		},
		{
			name: "embedded catalog",
			args: []string{"validate"},
			want: "embedded catalog is valid",
		},
		{
			name:    "invalid catalog",
			args:    []string{"validate", brokenFile},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(newCatalogCommand(), "", tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
