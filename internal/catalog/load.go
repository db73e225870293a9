package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed lessons.yml
var defaultCatalog []byte

type catalogFile struct {
	Levels  []Level  `yaml:"levels" validate:"dive"`
	Lessons []Lesson `yaml:"lessons" validate:"dive"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, falling back to the embedded catalog when
// path is empty or does not exist.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Default().Warn("catalog file not found, using the embedded catalog",
			slog.String("path", path),
		)
		return Default()
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	c, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog and validates it.
func Parse(contents []byte) (*Catalog, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}

	if err := Validate(file.Lessons, file.Levels); err != nil {
		return nil, err
	}
	return New(file.Lessons, file.Levels), nil
}
