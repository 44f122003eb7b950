package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix namespaces environment overrides, e.g. CATALOG_LOG_LEVEL.
	envPrefix = "CATALOG"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyDBFile       = "db_file"
	cfgKeyLogLevel     = "log_level"
	cfgKeyListenAddr   = "listen_addr"
	cfgKeyExportFormat = "export_format"

	defaultLogLevel     = "warn"
	defaultListenAddr   = ":8080"
	defaultExportFormat = "csv"
)

// envKeys are the config keys that an environment variable may override.
// data_dir is resolved by the paths package, which ranks config.yaml above
// the environment.
var envKeys = []string{cfgKeyBackend, cfgKeyDBFile, cfgKeyLogLevel, cfgKeyListenAddr, cfgKeyExportFormat}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeyExportFormat, defaultExportFormat)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, sysError(fmt.Errorf("bind env %s: %w", key, err))
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// newLogger builds a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = defaultLogLevel
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: expected debug, info, warn or error", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
