package metrics

import (
	configtypes "github.com/dgc-network/smart/pkg/types"
)

// MetricsOptions configures the prometheus collectors.
type MetricsOptions struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
}

type Config struct {
	options *MetricsOptions
}

func New(userConfig *configtypes.UserMetricsConfig) *Config {
	options := &MetricsOptions{
		Enabled:   defaultEnabled,
		Namespace: defaultNamespace,
	}
	if userConfig != nil {
		if userConfig.Enabled != nil {
			options.Enabled = *userConfig.Enabled
		}
		if userConfig.Namespace != nil && *userConfig.Namespace != "" {
			options.Namespace = *userConfig.Namespace
		}
	}
	return &Config{options: options}
}

func (c *Config) GetOptions() *MetricsOptions {
	return c.options
}
