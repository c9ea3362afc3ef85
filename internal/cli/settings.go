package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
)

func newSettingsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change stored settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show all settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				all, err := a.svc.Settings.All(cmd.Context())
				if err != nil {
					return err
				}
				return a.emit(all, func(w *tabwriter.Writer) {
					keys := make([]string, 0, len(all))
					for k := range all {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					for _, k := range keys {
						fmt.Fprintf(w, "%s\t%s\n", k, all[k])
					}
				})
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one setting as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, ok, err := a.svc.Settings.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("setting %s: %w", args[0], common.ErrorNotFound)
				}
				_, err = fmt.Fprintln(a.out, string(v))
				return err
			},
		},
		&cobra.Command{
			Use:   "set <key> <value> [<key> <value>]...",
			Short: "Save settings in one batch",
			Long: `Save one or more settings. A value that is not valid JSON is stored
as a string, so both 'set pageSize 50' and 'set catalogWebUrl https://…' work.`,
			Args: func(cmd *cobra.Command, args []string) error {
				if len(args) == 0 || len(args)%2 != 0 {
					return fmt.Errorf("expected key/value pairs, got %d arguments", len(args))
				}
				return nil
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				values := make(map[string]json.RawMessage, len(args)/2)
				for i := 0; i < len(args); i += 2 {
					values[args[i]] = settingValue(args[i+1])
				}
				return a.svc.Settings.Save(cmd.Context(), values)
			},
		},
	)
	return cmd
}

func settingValue(s string) json.RawMessage {
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	b, _ := json.Marshal(s)
	return b
}
