package app

import (
	"go.uber.org/fx"

	"github.com/dgc-network/smart/pkg/interfaces/config"
	"github.com/dgc-network/smart/pkg/types"
)

// Option configures the application.
type Option func(*options)

// options implements config.AppOptions.
type options struct {
	// configFilePath is read when appConfig is not given directly.
	configFilePath string

	// embeddedConfig takes precedence over configFilePath.
	embeddedConfig []byte

	appConfig *types.AppConfig

	// extra modules, mostly test overrides
	fxOptions []fx.Option
}

var _ config.AppOptions = (*options)(nil)

// WithConfigFile loads configuration from a JSON file.
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig uses configBytes as the JSON configuration.
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithAppConfig uses an already parsed configuration.
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithFxOptions adds modules to the container, for example fx.Decorate
// overrides in tests.
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) {
		o.fxOptions = append(o.fxOptions, opts...)
	}
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
