// Package cli implements the catalog command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/internal/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as a system failure (exit code 2).
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// exitCode returns the process exit code for an error returned by a
// command. Storage failures are system errors; everything else a caller can
// fix by changing the input is a user error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, types.ErrStorage) {
		return exitSysError
	}
	return exitUserError
}

// app holds global flag values and state loaded by the root command.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string

	resolvedConfigDir string
	config            *viper.Viper
	logger            *slog.Logger
}

// NewRootCmd creates the top-level "catalog" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog tracks a physical collection of items",
		Long: "Catalog records collection items (antiques, books, tools and the like)\n" +
			"in a local SQLite database and exposes them through this CLI and an HTTP API.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir, or $"+paths.EnvConfigDir+")")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: config data_dir, $"+paths.EnvDataDir+", or platform data dir)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default: config log_level)")

	root.AddCommand(
		a.newInitCmd(),
		newVersionCmd(a),
		a.newListCmd(),
		a.newFilterCmd(),
		a.newGetCmd(),
		a.newAddCmd(),
		a.newUpdateCmd(),
		a.newDeleteCmd(),
		a.newExportCmd(),
		a.newServeCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// load resolves the config directory, reads config.yaml and builds the
// logger. It runs before every subcommand.
func (a *app) load(stderr io.Writer) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	level := a.logLevel
	if level == "" {
		level = v.GetString(cfgKeyLogLevel)
	}
	logger, err := newLogger(stderr, level)
	if err != nil {
		return err
	}

	a.resolvedConfigDir = configDir
	a.config = v
	a.logger = logger
	return nil
}

// catalogConfig builds the backend Config from flags and config.yaml.
func (a *app) catalogConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	return types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
		DBFile:  a.config.GetString(cfgKeyDBFile),
	}, nil
}

// attachBackend creates a SQLite backend and attaches it to the configured
// data directory. The caller must defer backend.Detach().
func (a *app) attachBackend() (*sqlite.Backend, error) {
	cfg, err := a.catalogConfig()
	if err != nil {
		return nil, err
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendEmpty) ||
			errors.Is(err, types.ErrBackendUnknown) ||
			errors.Is(err, types.ErrDBFileInvalid) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return backend, nil
}
