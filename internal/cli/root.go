package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/config"
)

// needsCatalog marks commands that build the catalog API client.
const needsCatalog = "archivekeeper/catalog"

// Run executes the command line args over cfg. cfg should already carry
// file and environment values; flags are parsed into it here. The store is
// closed before Run returns, also when the command failed.
func Run(ctx context.Context, cfg *config.Config, args []string, in io.Reader, out, errOut io.Writer) error {
	a := newApp(cfg, in, out, errOut)
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "archivekeeper",
		Short: "Search the National Archives catalog and keep bookmarks",
		Long: `archivekeeper searches the NARA catalog, maps results to EAD-style records
and keeps bookmarks, categories and tags in a local SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
				return nil
			}
			switch a.output {
			case outputAuto, outputJSON, outputText:
			default:
				return fmt.Errorf("unknown output format %q", a.output)
			}
			_, withCatalog := cmd.Annotations[needsCatalog]
			return a.open(cmd.Context(), withCatalog)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	a.cfg.BindFlags(root.PersistentFlags())
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputAuto, "output format: auto, json or text")

	root.AddCommand(
		newSearchCmd(a),
		newShowCmd(a),
		newChildrenCmd(a),
		newBookmarkCmd(a),
		newCategoryCmd(a),
		newTagCmd(a),
		newSettingsCmd(a),
		newMigrateCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

func catalogCmd(c *cobra.Command) *cobra.Command {
	if c.Annotations == nil {
		c.Annotations = map[string]string{}
	}
	c.Annotations[needsCatalog] = "true"
	return c
}
