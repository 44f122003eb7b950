package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items that are not deleted",
		Long: `List shows every item that has not been soft-deleted, ordered by ID.

Example:
  catalog list
  catalog list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			items, err := backend.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list items: %w", err)
			}
			return a.printItems(cmd.OutOrStdout(), items)
		},
	}
}

func (a *app) newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [--<key> <value>...]",
		Short: "List items matching every given criterion",
		Long: `Filter returns the items matching all criteria given as flags.

Text criteria match case-sensitive substrings; _min and _max criteria are
inclusive bounds. Deleted items are excluded unless --deleted is given.

Example:
  catalog filter --name Clock --category Antique
  catalog filter --working true --date_added_min 2024-01-01
  catalog filter --deleted true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
				return fmt.Errorf("filter items: %w", err)
			}
			return a.printItems(cmd.OutOrStdout(), items)
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one item, including deleted items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			item, err := backend.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printItem(cmd.OutOrStdout(), item)
		},
	}
}

func (a *app) newAddCmd() *cobra.Command {
	var fromJSON string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new item",
		Long: `Add stores a new item built from field flags, a JSON document, or both.
Flags override fields read from --from-json. date_added defaults to today.

Example:
  catalog add --name "Mantel clock" --description "Brass, with key" \
      --category Antique --action Keep --age_years 70
  catalog add --from-json item.json
  cat item.json | catalog add --from-json -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var item types.Item
			if fromJSON != "" {
				if err := readItemJSON(cmd.InOrStdin(), fromJSON, &item); err != nil {
					return err
				}
			}
			if err := applyFieldFlags(cmd, &item); err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if _, err := backend.Insert(cmd.Context(), &item); err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %d\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromJSON, "from-json", "", `read the item from a JSON file ("-" for stdin)`)
	for _, f := range addableFields() {
		cmd.Flags().String(f.Name, "", fmt.Sprintf("%s (%s)", f.Name, f.Kind))
	}
	return cmd
}

func (a *app) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> [field=value...]",
		Short: "Update named fields of one item",
		Long: `Update sets the named fields of one item. Either every field is applied or
none is. An empty value clears an optional field. With no field=value pairs
only last_updated is refreshed.

Example:
  catalog update 7 action=Sell estimated_value=150
  catalog update 7 creator=`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updates, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			item, err := backend.UpdateFields(cmd.Context(), id, updates)
			if err != nil {
				return err
			}
			return a.printItem(cmd.OutOrStdout(), item)
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Soft-delete one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := backend.SoftDelete(cmd.Context(), id); err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %d\n", id)
			return nil
		},
	}
}

// parseID parses a positive item ID.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &types.CoercionError{Field: "id", Value: raw, Err: types.ErrInvalidID}
	}
	return id, nil
}

// parseAssignments turns field=value arguments into an update map. The
// value may be empty; a repeated field keeps the last value.
func parseAssignments(args []string) (map[string]string, error) {
	updates := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid update %q (expected field=value)", arg)
		}
		updates[name] = value
	}
	return updates, nil
}

// addableFields returns the fields a new item may be given on the command
// line. A new item is never created deleted.
func addableFields() []types.Field {
	var out []types.Field
	for _, f := range types.Fields() {
		if f.Settable && f.Name != "deleted" {
			out = append(out, f)
		}
	}
	return out
}

// applyFieldFlags sets the item fields whose flags were given.
func applyFieldFlags(cmd *cobra.Command, item *types.Item) error {
	for _, f := range addableFields() {
		if !cmd.Flags().Changed(f.Name) {
			continue
		}
		raw, err := cmd.Flags().GetString(f.Name)
		if err != nil {
			return err
		}
		v, err := types.CoerceField(f.Name, raw)
		if err != nil {
			return err
		}
		f.Set(item, v)
	}
	return nil
}

// readItemJSON decodes an item from path, or from stdin when path is "-".
func readItemJSON(stdin io.Reader, path string, item *types.Item) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read item JSON: %w", err)
	}
	if err := json.Unmarshal(data, item); err != nil {
		return fmt.Errorf("parse item JSON: %w", err)
	}
	return nil
}

// addFilterFlags registers one string flag per filter key.
func addFilterFlags(cmd *cobra.Command) {
	for _, key := range types.FilterKeys() {
		cmd.Flags().String(key, "", "filter on "+key)
	}
}

// filterFromFlags builds an ItemFilter from the filter flags that were
// given on the command line.
func filterFromFlags(cmd *cobra.Command) (types.ItemFilter, error) {
	values := make(map[string]string)
	for _, key := range types.FilterKeys() {
		if !cmd.Flags().Changed(key) {
			continue
		}
		v, err := cmd.Flags().GetString(key)
		if err != nil {
			return types.ItemFilter{}, err
		}
		values[key] = v
	}
	return types.ParseFilter(values)
}
