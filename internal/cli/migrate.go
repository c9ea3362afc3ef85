package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/legacy"
)

func newMigrateCmd(a *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "migrate [dir]",
		Short: "Import legacy JSON storage into the database",
		Long: `Import categories.json, tags.json and bookmarks.json from a legacy storage
directory. Items that already exist are skipped. Once the import succeeds it
is not repeated unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.LegacyDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return errors.New("no legacy directory given; pass one or set --legacy-dir")
			}

			m := a.migrator()
			var (
				res legacy.Result
				err error
			)
			if force && interactive(a.in) {
				ok, err := confirm(a.in, a.errOut, "Re-run the legacy import into "+a.cfg.DatabasePath+"?")
				if err != nil || !ok {
					return err
				}
			}
			if force {
				var data *legacy.Data
				if data, err = legacy.LoadDir(dir); err == nil {
					res, err = m.Migrate(cmd.Context(), data)
				}
			} else {
				res, err = m.Run(cmd.Context(), dir)
			}
			if err != nil {
				return err
			}

			return a.emit(res, func(w *tabwriter.Writer) {
				if res.AlreadyMigrated {
					fmt.Fprintln(w, "Legacy storage was already migrated.")
					return
				}
				fmt.Fprintln(w, "\tCREATED\tSKIPPED")
				fmt.Fprintf(w, "categories\t%d\t%d\n", res.Categories.Created, res.Categories.Skipped)
				fmt.Fprintf(w, "tags\t%d\t%d\n", res.Tags.Created, res.Tags.Skipped)
				fmt.Fprintf(w, "bookmarks\t%d\t%d\n", res.Bookmarks.Created, res.Bookmarks.Skipped)
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "run even if a previous migration completed")
	return cmd
}
