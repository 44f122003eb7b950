// Package types defines the Catalog interface, the Item entity with its
// closed field table, filter criteria, configuration, and the error
// taxonomy shared by storage backends and their callers.
package types
