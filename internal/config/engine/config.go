// Package engine holds the WASM module host options.
package engine

import (
	"time"

	configtypes "github.com/dgc-network/smart/pkg/types"
)

// EngineOptions configures the wazero based module host.
type EngineOptions struct {
	ArenaPages        uint32        `json:"arena_pages"`
	MaxMemoryPages    uint32        `json:"max_memory_pages"`
	ExecutionTimeout  time.Duration `json:"execution_timeout"`
	CompiledCacheSize int           `json:"compiled_cache_size"`
	MaxCallDepth      int           `json:"max_call_depth"`
	// CompilationCacheDir persists compiled code across runs when set.
	CompilationCacheDir string `json:"compilation_cache_dir"`
}

type Config struct {
	options *EngineOptions
}

// New applies the user section over defaults. Unparsable durations keep the
// default.
func New(userConfig *configtypes.UserEngineConfig) *Config {
	options := DefaultOptions()
	if userConfig != nil {
		applyUserConfig(options, userConfig)
	}
	return &Config{options: options}
}

// DefaultOptions returns a fresh copy of the defaults.
func DefaultOptions() *EngineOptions {
	return &EngineOptions{
		ArenaPages:        defaultArenaPages,
		MaxMemoryPages:    defaultMaxMemoryPages,
		ExecutionTimeout:  defaultExecutionTimeout,
		CompiledCacheSize: defaultCompiledCacheSize,
		MaxCallDepth:      defaultMaxCallDepth,
	}
}

func applyUserConfig(options *EngineOptions, userConfig *configtypes.UserEngineConfig) {
	if userConfig.ArenaPages != nil && *userConfig.ArenaPages > 0 {
		options.ArenaPages = *userConfig.ArenaPages
	}
	if userConfig.MaxMemoryPages != nil && *userConfig.MaxMemoryPages > 0 {
		options.MaxMemoryPages = *userConfig.MaxMemoryPages
	}
	if userConfig.ExecutionTimeout != nil {
		if d, err := time.ParseDuration(*userConfig.ExecutionTimeout); err == nil {
			options.ExecutionTimeout = d
		}
	}
	if userConfig.CompiledCacheSize != nil && *userConfig.CompiledCacheSize > 0 {
		options.CompiledCacheSize = *userConfig.CompiledCacheSize
	}
	if userConfig.MaxCallDepth != nil && *userConfig.MaxCallDepth > 0 {
		options.MaxCallDepth = *userConfig.MaxCallDepth
	}
	if userConfig.CompilationCache != nil {
		options.CompilationCacheDir = *userConfig.CompilationCache
	}
}

func (c *Config) GetOptions() *EngineOptions {
	return c.options
}
