package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/handler"
	"github.com/lambda-feedback/azshim/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format" validate:"omitempty,oneof=production development"`

	// Manifest is the path to the function manifest
	Manifest string `conf:"manifest" validate:"required"`

	// EnvFile is an optional dotenv file, applied on top of the
	// process environment. Meant for local debugging.
	EnvFile string `conf:"env_file"`

	// Worker describes the handler process run by the exec command
	Worker handler.ProcessConfig `conf:"worker"`
}

var DefaultConfig = conf.Defaults{
	"log_format": "production",
	"manifest":   funcctx.DefaultManifest,
}

// Validate checks the config for missing or invalid values.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
