package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Storage     StorageConfig     `mapstructure:"storage"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Translation TranslationConfig `mapstructure:"translation"`
	Templates   TemplatesConfig   `mapstructure:"templates"`
	Outputs     OutputsConfig     `mapstructure:"outputs"`
	Server      ServerConfig      `mapstructure:"server"`
}

// StorageConfig selects the key-value backend that holds learner state.
type StorageConfig struct {
	Kind     string         `mapstructure:"kind" validate:"storage_kind"`
	Path     string         `mapstructure:"path"`
	Database DatabaseConfig `mapstructure:"database"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type CatalogConfig struct {
	File string `mapstructure:"file" validate:"omitempty,file"`
}

type TranslationConfig struct {
	BaseURL       string `mapstructure:"base_url" validate:"required,url"`
	Email         string `mapstructure:"email" validate:"omitempty,email"`
	CacheTTLHours int    `mapstructure:"cache_ttl_hours" validate:"gte=1"`
	RetryAttempts uint   `mapstructure:"retry_attempts" validate:"lte=10"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/parlami")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load is a shorthand for NewConfigLoader(configFile).Load().
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.kind", "sqlite")
	v.SetDefault("storage.path", DefaultDataPath("parlami.db"))
	v.SetDefault("storage.database.host", "localhost")
	v.SetDefault("storage.database.port", 3306)
	v.SetDefault("storage.database.database", "parlami")
	v.SetDefault("storage.database.username", "parlami")
	v.SetDefault("catalog.file", "")
	v.SetDefault("translation.base_url", "https://api.mymemory.translated.net")
	v.SetDefault("translation.cache_ttl_hours", 7*24)
	v.SetDefault("translation.retry_attempts", 2)
	// Template is optional - if not specified, the embedded report template is used
	v.SetDefault("templates.report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})

	// Secrets come from environment variables only
	if err := v.BindEnv("storage.database.password", "PARLAMI_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind PARLAMI_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("translation.email", "MYMEMORY_EMAIL"); err != nil {
		return nil, fmt.Errorf("failed to bind MYMEMORY_EMAIL environment variable: %w", err)
	}
	if err := v.BindEnv("storage.kind", "PARLAMI_STORAGE"); err != nil {
		return nil, fmt.Errorf("failed to bind PARLAMI_STORAGE environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// DefaultDataPath resolves a file under the data directory:
// $XDG_DATA_HOME/parlami, falling back to ~/.local/share/parlami and then
// to the working directory.
func DefaultDataPath(name string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("data", name)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "parlami", name)
}
