package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/services"
)

func newCategoryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage bookmark categories",
	}

	var color string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category at the end of the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := services.CategoryInput{Name: args[0]}
			if cmd.Flags().Changed("color") {
				in.Color = &color
			}
			c, err := a.svc.Categories.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.emit(c, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "Created category %s (%s)\n", c.Name, c.ID)
			})
		},
	}
	add.Flags().StringVar(&color, "color", "", "display color")

	var newName, newColor string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.CategoryPatch
			if cmd.Flags().Changed("name") {
				p.Name = &newName
			}
			if cmd.Flags().Changed("color") {
				p.Color = &newColor
			}
			if p.Empty() {
				return errors.New("nothing to update")
			}
			c, err := a.svc.Categories.Update(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			return a.emit(c, nil)
		},
	}
	update.Flags().StringVar(&newName, "name", "", "new name")
	update.Flags().StringVar(&newColor, "color", "", "new color, empty clears it")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories in display order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := a.svc.Categories.List(cmd.Context())
				if err != nil {
					return err
				}
				return a.emit(list, categoryRows(list))
			},
		},
		add,
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a category that holds no bookmarks",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := a.svc.Categories.Delete(cmd.Context(), args[0])
				if errors.Is(err, common.ErrorInUse) {
					return fmt.Errorf("%w; move or delete its bookmarks first", err)
				}
				return err
			},
		},
		&cobra.Command{
			Use:   "reorder <id>...",
			Short: "Set the display order; every category id must be given once",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := a.svc.Categories.Reorder(cmd.Context(), args)
				if err != nil {
					return err
				}
				return a.emit(list, categoryRows(list))
			},
		},
	)
	return cmd
}
