package badger

import (
	"path/filepath"
	"time"

	configtypes "github.com/dgc-network/smart/pkg/types"
)

// BadgerOptions configures the local state store and its read cache.
type BadgerOptions struct {
	Path       string `json:"path"`
	SyncWrites bool   `json:"sync_writes"`
	InMemory   bool   `json:"in_memory"`

	CacheEnabled    bool          `json:"cache_enabled"`
	CacheLifeWindow time.Duration `json:"cache_life_window"`
	CacheMaxSizeMB  int           `json:"cache_max_size_mb"`
}

type Config struct {
	options *BadgerOptions
}

func New(userConfig *configtypes.UserStorageConfig) *Config {
	options := &BadgerOptions{
		Path:            filepath.Join(defaultDataRoot, defaultDirName),
		SyncWrites:      defaultSyncWrites,
		InMemory:        defaultInMemory,
		CacheEnabled:    defaultCacheEnabled,
		CacheLifeWindow: defaultCacheLifeWindow,
		CacheMaxSizeMB:  defaultCacheMaxSizeMB,
	}
	if userConfig != nil {
		applyUserConfig(options, userConfig)
	}
	return &Config{options: options}
}

func applyUserConfig(options *BadgerOptions, userConfig *configtypes.UserStorageConfig) {
	if userConfig.DataRoot != nil && *userConfig.DataRoot != "" {
		options.Path = filepath.Join(*userConfig.DataRoot, defaultDirName)
	}
	if userConfig.SyncWrites != nil {
		options.SyncWrites = *userConfig.SyncWrites
	}
	if userConfig.InMemory != nil {
		options.InMemory = *userConfig.InMemory
	}
	if userConfig.CacheEnabled != nil {
		options.CacheEnabled = *userConfig.CacheEnabled
	}
	if userConfig.CacheLifeWindow != nil {
		if d, err := time.ParseDuration(*userConfig.CacheLifeWindow); err == nil {
			options.CacheLifeWindow = d
		}
	}
	if userConfig.CacheMaxSizeMB != nil && *userConfig.CacheMaxSizeMB > 0 {
		options.CacheMaxSizeMB = *userConfig.CacheMaxSizeMB
	}
}

func (c *Config) GetOptions() *BadgerOptions {
	return c.options
}
