// Package config defines how components obtain their resolved options.
package config

import (
	engineconfig "github.com/dgc-network/smart/internal/config/engine"
	eventconfig "github.com/dgc-network/smart/internal/config/event"
	logconfig "github.com/dgc-network/smart/internal/config/log"
	metricsconfig "github.com/dgc-network/smart/internal/config/metrics"
	badgerconfig "github.com/dgc-network/smart/internal/config/storage/badger"
	"github.com/dgc-network/smart/pkg/types"
)

// Provider hands out per-area options with defaults applied.
type Provider interface {
	GetLog() *logconfig.LogOptions
	GetEngine() *engineconfig.EngineOptions
	GetBadger() *badgerconfig.BadgerOptions
	GetMetrics() *metricsconfig.MetricsOptions
	GetEvent() *eventconfig.EventOptions

	// GetAppConfig returns the raw user configuration, never nil.
	GetAppConfig() *types.AppConfig
}

// AppOptions supplies the user configuration to the config module.
type AppOptions interface {
	GetAppConfig() *types.AppConfig
}
