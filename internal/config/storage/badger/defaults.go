package badger

import "time"

const (
	defaultDataRoot   = "./data"
	defaultDirName    = "state"
	defaultSyncWrites = true
	defaultInMemory   = false

	defaultCacheEnabled    = true
	defaultCacheLifeWindow = 10 * time.Minute
	defaultCacheMaxSizeMB  = 64
)
