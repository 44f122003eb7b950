package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/export"
)

func (a *app) newExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <path> [--format csv|jsonl] [--<key> <value>...]",
		Short: "Write items to a CSV or JSONL file",
		Long: `Export writes the items matching the filter flags to path. With no filter
flags every item that is not deleted is exported. The file is replaced
atomically.

Example:
  catalog export items.csv
  catalog export antiques.jsonl --format jsonl --category Antique`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.config.GetString(cfgKeyExportFormat)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			items, err := backend.Filter(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("export items: %w", err)
			}
			if err := export.WriteFile(args[0], f, items); err != nil {
				return sysError(fmt.Errorf("write %s: %w", args[0], err))
			}

			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"path":   args[0],
					"format": f,
					"count":  len(items),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d item(s) to %s\n", len(items), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: csv or jsonl (default: config export_format)")
	addFilterFlags(cmd)
	return cmd
}
