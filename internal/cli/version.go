package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the catalog version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonMode {
				out := map[string]string{
					"version": catalog.Version,
					"module":  catalog.ModulePath,
				}
				if catalog.Revision != "" {
					out["revision"] = catalog.Revision
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog v%s\nmodule: %s\n", catalog.Version, catalog.ModulePath)
			if catalog.Revision != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "revision: %s\n", catalog.Revision)
			}
			return nil
		},
	}
}
