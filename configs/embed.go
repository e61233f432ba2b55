// Package configs embeds the shipped configuration files.
package configs

import _ "embed"

//go:embed development/config.json
var developmentConfig []byte

//go:embed production/config.json
var productionConfig []byte

// GetDevelopmentConfig returns the configuration used when no file is given.
func GetDevelopmentConfig() []byte {
	return developmentConfig
}

func GetProductionConfig() []byte {
	return productionConfig
}
