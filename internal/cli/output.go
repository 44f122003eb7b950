package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/catalog/internal/export"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// maxNameWidth truncates names in the item table.
const maxNameWidth = 40

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printItems writes items as JSON or as a table with a total line.
func (a *app) printItems(w io.Writer, items []types.Item) error {
	if a.jsonMode {
		if items == nil {
			items = []types.Item{}
		}
		return printJSON(w, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return nil
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tACTION\tADDED\tUPDATED")
	for _, item := range items {
		name := item.Name
		if r := []rune(name); len(r) > maxNameWidth {
			name = string(r[:maxNameWidth-3]) + "..."
		}
		if item.Deleted {
			name += " (deleted)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, name, item.Category, item.Action, item.DateAdded, item.LastUpdated)
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total: %d item(s)\n", len(items))
	return nil
}

// printItem writes one item as JSON or as field: value lines in field
// order. Unset attributes are shown as "-".
func (a *app) printItem(w io.Writer, item *types.Item) error {
	if a.jsonMode {
		return printJSON(w, item)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := export.Header()
	for i, cell := range export.Record(*item) {
		if cell == "" {
			cell = "-"
		}
		fmt.Fprintf(tw, "%s:\t%s\n", header[i], cell)
	}
	return tw.Flush()
}
