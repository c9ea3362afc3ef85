package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/httpapi"
)

func newServeCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API for a host UI until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := httpapi.New(a.cfg.ListenAddr, a.svc, a.migrator(), a.cfg.CatalogWebURL, a.log)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.cfg.ListenAddr, "listen", a.cfg.ListenAddr, "address to listen on")
	return catalogCmd(cmd)
}
