package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(dataHome string) *Config {
	return &Config{
		Storage: StorageConfig{
			Kind: "sqlite",
			Path: filepath.Join(dataHome, "parlami", "parlami.db"),
			Database: DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "parlami",
				Username: "parlami",
			},
		},
		Translation: TranslationConfig{
			BaseURL:       "https://api.mymemory.translated.net",
			CacheTTLHours: 168,
			RetryAttempts: 2,
		},
		Outputs: OutputsConfig{
			ReportDirectory: filepath.Join("outputs", "reports"),
		},
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		want              func(dataHome string) *Config
		wantErrorContains []string
	}{
		{
			name: "defaults without config file",
			want: defaultConfig,
		},
		{
			name: "custom values",
			configContent: `storage:
  kind: yaml
  path: custom/state.yml
translation:
  cache_ttl_hours: 24
  retry_attempts: 0
outputs:
  report_directory: custom/reports
server:
  port: 9090
  cors:
    allowed_origins:
      - https://parlami.example
`,
			want: func(dataHome string) *Config {
				cfg := defaultConfig(dataHome)
				cfg.Storage.Kind = "yaml"
				cfg.Storage.Path = "custom/state.yml"
				cfg.Translation.CacheTTLHours = 24
				cfg.Translation.RetryAttempts = 0
				cfg.Outputs.ReportDirectory = "custom/reports"
				cfg.Server.Port = 9090
				cfg.Server.CORS.AllowedOrigins = []string{"https://parlami.example"}
				return cfg
			},
		},
		{
			name: "secrets from environment",
			configContent: `storage:
  kind: mysql
`,
			env: map[string]string{
				"PARLAMI_DB_PASSWORD": "secret",
				"MYMEMORY_EMAIL":      "learner@example.com",
			},
			want: func(dataHome string) *Config {
				cfg := defaultConfig(dataHome)
				cfg.Storage.Kind = "mysql"
				cfg.Storage.Database.Password = "secret"
				cfg.Translation.Email = "learner@example.com"
				return cfg
			},
		},
		{
			name:          "storage kind from environment",
			configContent: "",
			env:           map[string]string{"PARLAMI_STORAGE": "memory"},
			want: func(dataHome string) *Config {
				cfg := defaultConfig(dataHome)
				cfg.Storage.Kind = "memory"
				return cfg
			},
		},
		{
			name: "unknown storage kind",
			configContent: `storage:
  kind: redis
`,
			wantErrorContains: []string{"invalid configuration", `storage.kind must be one of memory, yaml, sqlite, mysql, got "redis"`},
		},
		{
			name:              "storage kind from environment is validated too",
			env:               map[string]string{"PARLAMI_STORAGE": "postgres"},
			wantErrorContains: []string{`storage.kind must be one of memory, yaml, sqlite, mysql, got "postgres"`},
		},
		{
			name: "catalog file does not exist",
			configContent: `catalog:
  file: /nonexistent/lessons.yml
`,
			wantErrorContains: []string{"file must be an existing and readable file"},
		},
		{
			name: "invalid YAML format",
			configContent: `storage:
  kind: [sqlite
`,
			wantErrorContains: []string{"could not be read"},
		},
		{
			name: "cache TTL below one hour",
			configContent: `translation:
  cache_ttl_hours: 0
`,
			wantErrorContains: []string{"cache_ttl_hours must be 1 or greater"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			dataHome := filepath.Join(tempDir, "share")
			t.Setenv("XDG_DATA_HOME", dataHome)
			t.Setenv("PARLAMI_DB_PASSWORD", "")
			t.Setenv("MYMEMORY_EMAIL", "")
			t.Setenv("PARLAMI_STORAGE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configPath := ""
			if tt.configContent != "" {
				configPath = filepath.Join(tempDir, "config.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)
			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(dataHome), got)
		})
	}
}

func TestLoad_CatalogFileExists(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tempDir)

	catalogPath := filepath.Join(tempDir, "lessons.yml")
	require.NoError(t, os.WriteFile(catalogPath, []byte("lessons: []\n"), 0644))
	configPath := filepath.Join(tempDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("catalog:\n  file: "+catalogPath+"\n"), 0644))

	got, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, catalogPath, got.Catalog.File)
}

func TestDefaultDataPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "parlami", "x.db"), DefaultDataPath("x.db"))

	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "parlami", "x.db"), DefaultDataPath("x.db"))
}
