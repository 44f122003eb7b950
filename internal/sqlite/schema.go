package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

const itemsTable = "items"

// Index DDL for common queries.
const (
	idxItemsDeleted  = `CREATE INDEX IF NOT EXISTS idx_items_deleted ON items(deleted);`
	idxItemsCategory = `CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);`
)

// itemColumns lists every items column in SELECT order: id, then the field
// table.
var itemColumns = func() []string {
	cols := []string{"id"}
	for _, f := range types.Fields() {
		cols = append(cols, f.Name)
	}
	return cols
}()

// columnType returns the SQLite storage type for a field kind. Enums and
// dates are stored as their text form.
func columnType(kind types.FieldKind) string {
	switch kind {
	case types.KindBool, types.KindInteger:
		return "INTEGER"
	case types.KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// createItemsDDL builds the CREATE TABLE statement from the field table.
func createItemsDDL() string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS items (\n    id INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, f := range types.Fields() {
		fmt.Fprintf(&sb, ",\n    %s %s", f.Name, columnType(f.Kind))
		switch {
		case f.Name == "deleted":
			sb.WriteString(" NOT NULL DEFAULT 0")
		case !f.Nullable:
			sb.WriteString(" NOT NULL")
		}
	}
	sb.WriteString("\n);")
	return sb.String()
}

// schemaDDL lists every statement run on Attach, in order. All statements
// are idempotent.
func schemaDDL() []string {
	return []string{
		createItemsDDL(),
		idxItemsDeleted,
		idxItemsCategory,
	}
}
