package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/parlami/internal/catalog"
	"github.com/at-ishikawa/parlami/internal/config"
)

func TestSetupTestConfig(t *testing.T) {
	tests := []struct {
		name  string
		opts  func(tmpDir string) []ConfigOption
		check func(t *testing.T, tmpDir string, cfg *config.Config)
	}{
		{
			name: "defaults",
			opts: func(string) []ConfigOption { return nil },
			check: func(t *testing.T, tmpDir string, cfg *config.Config) {
				assert.Equal(t, "yaml", cfg.Storage.Kind)
				assert.Equal(t, filepath.Join(tmpDir, "data", "parlami.yml"), cfg.Storage.Path)
				assert.Equal(t, filepath.Join(tmpDir, "reports"), cfg.Outputs.ReportDirectory)
				assert.Equal(t, 24, cfg.Translation.CacheTTLHours)
				assert.Equal(t, uint(0), cfg.Translation.RetryAttempts)
				assert.Empty(t, cfg.Catalog.File)
			},
		},
		{
			name: "sqlite with a catalog",
			opts: func(tmpDir string) []ConfigOption {
				return []ConfigOption{
					WithStorageKind("sqlite"),
					WithCatalogFile(CreateCatalogFile(t, tmpDir)),
					WithTranslationBaseURL("http://localhost:9999"),
				}
			},
			check: func(t *testing.T, tmpDir string, cfg *config.Config) {
				assert.Equal(t, "sqlite", cfg.Storage.Kind)
				assert.Equal(t, filepath.Join(tmpDir, "data", "parlami.db"), cfg.Storage.Path)
				assert.Equal(t, filepath.Join(tmpDir, "catalog.yml"), cfg.Catalog.File)
				assert.Equal(t, "http://localhost:9999", cfg.Translation.BaseURL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			got := SetupTestConfig(t, tmpDir, tt.opts(tmpDir)...)
			assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

			cfg, err := config.Load(got)
			require.NoError(t, err)
			tt.check(t, tmpDir, cfg)
		})
	}
}

func TestCreateCatalogFile(t *testing.T) {
	path := CreateCatalogFile(t, t.TempDir())

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Essentials", c.LevelName(2))
	lesson, ok := c.Lesson("greetings")
	require.True(t, ok)
	assert.Len(t, lesson.Quiz, 2)
}
