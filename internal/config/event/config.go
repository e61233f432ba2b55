package event

import (
	configtypes "github.com/dgc-network/smart/pkg/types"
)

// EventOptions configures the in-process event bus.
type EventOptions struct {
	Enabled     bool   `json:"enabled"`
	TopicPrefix string `json:"topic_prefix"`
	// HistorySize bounds the publishes retained per topic; 0 keeps none.
	HistorySize int `json:"history_size"`
}

type Config struct {
	options *EventOptions
}

func New(userConfig *configtypes.UserEventConfig) *Config {
	options := &EventOptions{
		Enabled:     defaultEnabled,
		TopicPrefix: defaultTopicPrefix,
		HistorySize: defaultHistorySize,
	}
	if userConfig == nil {
		return &Config{options: options}
	}
	if userConfig.Enabled != nil {
		options.Enabled = *userConfig.Enabled
	}
	if userConfig.TopicPrefix != nil {
		options.TopicPrefix = *userConfig.TopicPrefix
	}
	if userConfig.HistorySize != nil && *userConfig.HistorySize >= 0 {
		options.HistorySize = *userConfig.HistorySize
	}
	return &Config{options: options}
}

func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// NewFromOptions wraps already resolved options.
func NewFromOptions(options *EventOptions) *Config {
	return &Config{options: options}
}
