package config

import (
	engineconfig "github.com/dgc-network/smart/internal/config/engine"
	badgerconfig "github.com/dgc-network/smart/internal/config/storage/badger"
	"github.com/dgc-network/smart/pkg/interfaces/config"
	"github.com/dgc-network/smart/pkg/types"
	"go.uber.org/fx"
)

type ConfigParams struct {
	fx.In

	AppOptions config.AppOptions `optional:"true"`
}

type ConfigOutput struct {
	fx.Out

	Provider config.Provider
}

// Module provides the configuration Provider and the option structs that
// other modules take directly.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			func(provider config.Provider) *engineconfig.EngineOptions {
				return provider.GetEngine()
			},
			func(provider config.Provider) *badgerconfig.BadgerOptions {
				return provider.GetBadger()
			},
		),
	)
}

func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}
	if err := ValidateConfig(appConfig); err != nil {
		return ConfigOutput{}, err
	}

	return ConfigOutput{
		Provider: NewProvider(appConfig),
	}, nil
}

// StaticOptions adapts an already loaded AppConfig to config.AppOptions.
type StaticOptions struct {
	Config *types.AppConfig
}

func (s StaticOptions) GetAppConfig() *types.AppConfig {
	return s.Config
}
