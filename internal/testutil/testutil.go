// Package testutil provides shared test helpers for config files and
// catalog fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConfigOption configures optional fields of a test config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	storageKind        string
	catalogFile        string
	translationBaseURL string
	reportTemplate     string
}

// WithStorageKind selects the storage backend. The default is yaml.
func WithStorageKind(kind string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.storageKind = kind
	}
}

// WithCatalogFile points the config at a catalog file.
func WithCatalogFile(path string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.catalogFile = path
	}
}

// WithTranslationBaseURL points the translation client at a test server.
func WithTranslationBaseURL(url string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.translationBaseURL = url
	}
}

// WithReportTemplate overrides the embedded report template.
func WithReportTemplate(path string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.reportTemplate = path
	}
}

// SetupTestConfig writes a config file whose state and outputs all live
// under tmpDir, and returns its path.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		storageKind:        "yaml",
		translationBaseURL: "http://127.0.0.1:1",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	storagePath := filepath.Join(tmpDir, "data", "parlami.yml")
	if cfg.storageKind == "sqlite" {
		storagePath = filepath.Join(tmpDir, "data", "parlami.db")
	}

	configContent := fmt.Sprintf(`storage:
  kind: %s
  path: %s
translation:
  base_url: %s
  cache_ttl_hours: 24
  retry_attempts: 0
outputs:
  report_directory: %s
`,
		cfg.storageKind,
		storagePath,
		cfg.translationBaseURL,
		filepath.Join(tmpDir, "reports"),
	)
	if cfg.catalogFile != "" {
		configContent += fmt.Sprintf("catalog:\n  file: %s\n", cfg.catalogFile)
	}
	if cfg.reportTemplate != "" {
		configContent += fmt.Sprintf("templates:\n  report_template: %s\n", cfg.reportTemplate)
	}

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateCatalogFile writes a two-level catalog: "greetings" in level 1 with
// two questions and "travel" in level 2 with one. It returns the file path.
func CreateCatalogFile(t *testing.T, dir string) string {
	t.Helper()

	content := `levels:
  - number: 1
    name: Basics
  - number: 2
    name: Essentials
lessons:
  - id: greetings
    level: 1
    category: Greetings
    items:
      - term: Ciao
        translation: Hello
      - term: Grazie
        translation: Thank you
    quiz:
      - prompt: Ciao
        answer: Hello
        options: [Hello, Goodbye]
      - prompt: Grazie
        answer: Thank you
        options: [Thank you, Please]
  - id: travel
    level: 2
    category: Travel
    items:
      - term: Treno
        translation: Train
    quiz:
      - prompt: Treno
        answer: Train
        options: [Train, Plane]
`
	path := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
