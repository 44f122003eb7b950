// Package catalog holds build metadata for the catalog module.
package catalog

// Version is the release version reported by the CLI and the HTTP API.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/catalog"

// Revision is the git revision stamped into release builds with -ldflags.
// It is empty in development builds.
var Revision = ""
