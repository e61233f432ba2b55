// Package types holds the data types shared across the processor: user
// configuration, the registry entities, payload actions and the apply error
// kinds.
package types

// AppConfig is the root of the JSON configuration file.
// Pointer fields are nil when the user did not set them; defaults live in
// internal/config/<area>/defaults.go.
type AppConfig struct {
	AppName *string `json:"app_name,omitempty"`
	DataDir *string `json:"data_dir,omitempty"`

	Log     *UserLogConfig     `json:"log,omitempty"`
	Engine  *UserEngineConfig  `json:"engine,omitempty"`
	Storage *UserStorageConfig `json:"storage,omitempty"`
	Metrics *UserMetricsConfig `json:"metrics,omitempty"`
	Event   *UserEventConfig   `json:"event,omitempty"`
}

// UserLogConfig mirrors the "log" section.
type UserLogConfig struct {
	Level         *string `json:"level,omitempty"`
	FilePath      *string `json:"file_path,omitempty"`
	ToConsole     *bool   `json:"to_console,omitempty"`
	MaxSize       *int    `json:"max_size,omitempty"`
	MaxBackups    *int    `json:"max_backups,omitempty"`
	MaxAge        *int    `json:"max_age,omitempty"`
	ContractLevel *string `json:"contract_level,omitempty"`
}

// UserEngineConfig mirrors the "engine" section (WASM module host).
type UserEngineConfig struct {
	ArenaPages        *uint32 `json:"arena_pages,omitempty"`
	MaxMemoryPages    *uint32 `json:"max_memory_pages,omitempty"`
	ExecutionTimeout  *string `json:"execution_timeout,omitempty"`
	CompiledCacheSize *int    `json:"compiled_cache_size,omitempty"`
	MaxCallDepth      *int    `json:"max_call_depth,omitempty"`
	CompilationCache  *string `json:"compilation_cache_dir,omitempty"`
}

// UserStorageConfig mirrors the "storage" section.
type UserStorageConfig struct {
	DataRoot        *string `json:"data_root,omitempty"`
	SyncWrites      *bool   `json:"sync_writes,omitempty"`
	InMemory        *bool   `json:"in_memory,omitempty"`
	CacheEnabled    *bool   `json:"cache_enabled,omitempty"`
	CacheLifeWindow *string `json:"cache_life_window,omitempty"`
	CacheMaxSizeMB  *int    `json:"cache_max_size_mb,omitempty"`
}

// UserMetricsConfig mirrors the "metrics" section.
type UserMetricsConfig struct {
	Enabled   *bool   `json:"enabled,omitempty"`
	Namespace *string `json:"namespace,omitempty"`
}

// UserEventConfig mirrors the "event" section.
type UserEventConfig struct {
	Enabled     *bool   `json:"enabled,omitempty"`
	TopicPrefix *string `json:"topic_prefix,omitempty"`
	HistorySize *int    `json:"history_size,omitempty"`
}
