package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	LogLevel     string `yaml:"log_level"`
	ListenAddr   string `yaml:"listen_addr"`
	ExportFormat string `yaml:"export_format"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize catalog storage",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"if none exists, then initialize the database schema.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(a.resolvedConfigDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	cfg, err := a.catalogConfig()
	if err != nil {
		return err
	}

	configPath := filepath.Join(a.resolvedConfigDir, configFileExt)
	// Record data_dir only when it was chosen explicitly.
	dataDir := a.dataDir
	if dataDir != "" {
		dataDir = cfg.DataDir
	}
	if err := writeConfigIfMissing(configPath, dataDir); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	dbPath := backend.Path()
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"config": configPath,
			"db":     dbPath,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Catalog initialized\nconfig: %s\ndatabase: %s\n", configPath, dbPath)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:      "sqlite",
		DataDir:      dataDir,
		LogLevel:     defaultLogLevel,
		ListenAddr:   defaultListenAddr,
		ExportFormat: defaultExportFormat,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
