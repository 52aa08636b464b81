package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidLogLevel   = goerr.New("invalid log level")
	ErrInvalidLogFormat  = goerr.New("invalid log format")
	ErrInvalidBackend    = goerr.New("invalid repository backend")
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidLevelsFile = goerr.New("invalid levels configuration")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	LevelIDKey    = "level_id"
)
