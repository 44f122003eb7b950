package types

import (
	"errors"
	"strings"
)

// Config holds backend selection and parameters for Catalog.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	DBFile  string `json:"db_file,omitempty" yaml:"db_file,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultDBFile is the database file name used when Config.DBFile is empty.
const DefaultDBFile = "catalog.db"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDBFileInvalid  = errors.New("db file must be a plain file name")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DBFile != "" && (c.DBFile == "." || c.DBFile == ".." || strings.ContainsAny(c.DBFile, `/\`)) {
		return ErrDBFileInvalid
	}
	return nil
}

// DatabaseFile returns the configured database file name or DefaultDBFile.
func (c Config) DatabaseFile() string {
	if c.DBFile == "" {
		return DefaultDBFile
	}
	return c.DBFile
}
