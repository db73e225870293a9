package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/parlami/internal/catalog"
	"github.com/at-ishikawa/parlami/internal/config"
	"github.com/at-ishikawa/parlami/internal/learner"
	"github.com/at-ishikawa/parlami/internal/storage"
	"github.com/at-ishikawa/parlami/internal/translation"
)

// StorageKind is a storage backend chosen on the command line.
type StorageKind string

func (k *StorageKind) Set(val string) error {
	for _, kind := range storage.Kinds {
		if val == string(kind) {
			*k = StorageKind(kind)
			return nil
		}
	}
	return fmt.Errorf("invalid storage kind: %s", val)
}

func (k StorageKind) String() string {
	return string(k)
}

func (k *StorageKind) Type() string {
	return "kind"
}

var _ pflag.Value = (*StorageKind)(nil)

func allStorageKinds() []string {
	kinds := make([]string, 0, len(storage.Kinds))
	for _, kind := range storage.Kinds {
		kinds = append(kinds, string(kind))
	}
	return kinds
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if storageKind != "" {
		cfg.Storage.Kind = string(storageKind)
	}
	return cfg, nil
}

// workspace is the opened state every command works on.
type workspace struct {
	cfg     *config.Config
	store   storage.Store
	session *learner.Session
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage.Open > %w", err)
	}
	c, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("catalog.Load > %w", err)
	}
	session, err := learner.Open(ctx, store, c, time.Now)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("learner.Open > %w", err)
	}
	return &workspace{cfg: cfg, store: store, session: session}, nil
}

func (w *workspace) Close() error {
	return w.store.Close()
}

func (w *workspace) savedTranslations() *translation.SavedRepository {
	return translation.NewSavedRepository(w.store, time.Now)
}

// newTranslator returns the cached translation service and its client,
// which the caller closes.
func (w *workspace) newTranslator() (*translation.Service, *translation.MyMemoryClient) {
	client := translation.NewMyMemoryClient(w.cfg.Translation.BaseURL, w.cfg.Translation.Email, w.cfg.Translation.RetryAttempts)
	ttl := time.Duration(w.cfg.Translation.CacheTTLHours) * time.Hour
	return translation.NewService(client, translation.NewCache(w.store, ttl, time.Now), time.Now), client
}
