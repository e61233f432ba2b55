package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/fx"

	config "github.com/dgc-network/smart/internal/config"
	"github.com/dgc-network/smart/internal/core/engine/wasm"
	"github.com/dgc-network/smart/internal/core/handler"
	"github.com/dgc-network/smart/internal/core/infrastructure/event"
	log "github.com/dgc-network/smart/internal/core/infrastructure/log"
	"github.com/dgc-network/smart/internal/core/infrastructure/metrics"
	badgerstore "github.com/dgc-network/smart/internal/core/infrastructure/storage/badger"
	configInterface "github.com/dgc-network/smart/pkg/interfaces/config"
	"github.com/dgc-network/smart/pkg/types"
)

// Bootstrap assembles the fx container layer by layer.
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer provides configuration, logging, metrics and
// events.
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configInterface.AppOptions { return b.opts }),
		config.Module(),
		log.Module(),
		metrics.Module(),
		event.Module(),
	}
}

// SetupStorageLayer provides the badger state store.
func (b *Bootstrap) SetupStorageLayer() []fx.Option {
	return []fx.Option{
		badgerstore.Module(),
	}
}

// SetupBusinessLayer provides the contract engine and the transaction
// handler, in dependency order.
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		wasm.Module(),
		handler.Module(),
	}
}

func (b *Bootstrap) SetupModules() []fx.Option {
	var modules []fx.Option
	modules = append(modules, b.SetupInfrastructureLayer()...)
	modules = append(modules, b.SetupStorageLayer()...)
	modules = append(modules, b.SetupBusinessLayer()...)
	return append(modules, b.opts.fxOptions...)
}

// CreateFxApp builds the container and fills target from it.
func (b *Bootstrap) CreateFxApp(target *components) error {
	if err := b.loadConfig(); err != nil {
		return err
	}
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
		fx.Populate(
			&target.Provider,
			&target.Logger,
			&target.Handler,
			&target.Engine,
			&target.Store,
			&target.Events,
			&target.Metrics,
		),
	)
	return b.fxApp.Err()
}

// loadConfig resolves the configuration source: an explicit AppConfig, then
// embedded bytes, then the config file. None of them means defaults.
func (b *Bootstrap) loadConfig() error {
	if b.opts.appConfig != nil {
		return nil
	}
	if len(b.opts.embeddedConfig) > 0 {
		appConfig := &types.AppConfig{}
		if err := json.Unmarshal(b.opts.embeddedConfig, appConfig); err != nil {
			return fmt.Errorf("parse embedded config: %w", err)
		}
		b.opts.appConfig = appConfig
		return nil
	}
	appConfig, err := config.LoadFile(getConfigFilePath(b.opts.configFilePath))
	if err != nil {
		return err
	}
	b.opts.appConfig = appConfig
	return nil
}

func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}
	return nil
}

func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("stop application: %w", err)
	}
	return nil
}

// getConfigFilePath prefers SMART_CONFIG_PATH over the configured path.
func getConfigFilePath(configured string) string {
	if envPath := os.Getenv("SMART_CONFIG_PATH"); envPath != "" {
		return envPath
	}
	return configured
}
