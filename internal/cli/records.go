package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
)

func newSearchCmd(a *App) *cobra.Command {
	var p catalog.SearchParams
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search the catalog",
		Example: `  archivekeeper search japanese surrender
  archivekeeper search --level series --online "deck logs"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Query = strings.Join(args, " ")
			res, err := a.svc.Search.Search(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.emit(res, func(w *tabwriter.Writer) {
				recordRows(res.Records)(w)
				fmt.Fprintf(w, "\n%d of %d results\n", len(res.Records), res.Total)
			})
		},
	}
	cmd.Flags().IntVar(&p.Limit, "limit", 20, "results per page")
	cmd.Flags().IntVar(&p.Page, "page", 0, "page number")
	cmd.Flags().StringVar(&p.Level, "level", "", "only this level of description")
	cmd.Flags().BoolVar(&p.AvailableOnline, "online", false, "only records with digital objects")
	return catalogCmd(cmd)
}

func newShowCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <naId>",
		Short: "Show one catalog record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.svc.Search.Record(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(rec, recordDetail(*rec))
		},
	}
	return catalogCmd(cmd)
}

func newChildrenCmd(a *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "children <naId>",
		Short: "List the records directly below a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.svc.Search.Children(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return a.emit(recs, recordRows(recs))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of children")
	return catalogCmd(cmd)
}
