// Package config resolves the JSON configuration file into per-area options.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgc-network/smart/internal/config/engine"
	"github.com/dgc-network/smart/internal/config/event"
	"github.com/dgc-network/smart/internal/config/log"
	"github.com/dgc-network/smart/internal/config/metrics"
	"github.com/dgc-network/smart/internal/config/storage/badger"
	"github.com/dgc-network/smart/pkg/interfaces/config"
	"github.com/dgc-network/smart/pkg/types"
)

// Provider implements config.Provider over a parsed AppConfig.
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider wraps appConfig; nil means "all defaults".
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{appConfig: appConfig}
}

// LoadFile parses a JSON configuration file. An empty path yields an empty
// configuration.
func LoadFile(path string) (*types.AppConfig, error) {
	appConfig := &types.AppConfig{}
	if path == "" {
		return appConfig, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, appConfig); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return appConfig, nil
}

func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

func (p *Provider) GetLog() *log.LogOptions {
	return log.New(p.appConfig.Log).GetOptions()
}

func (p *Provider) GetEngine() *engine.EngineOptions {
	return engine.New(p.appConfig.Engine).GetOptions()
}

// GetBadger resolves storage options. The top level data_dir is used as the
// data root when the storage section does not name one.
func (p *Provider) GetBadger() *badger.BadgerOptions {
	storage := p.appConfig.Storage
	if p.appConfig.DataDir != nil && (storage == nil || storage.DataRoot == nil) {
		merged := types.UserStorageConfig{}
		if storage != nil {
			merged = *storage
		}
		merged.DataRoot = p.appConfig.DataDir
		storage = &merged
	}
	return badger.New(storage).GetOptions()
}

func (p *Provider) GetMetrics() *metrics.MetricsOptions {
	return metrics.New(p.appConfig.Metrics).GetOptions()
}

func (p *Provider) GetEvent() *event.EventOptions {
	return event.New(p.appConfig.Event).GetOptions()
}
