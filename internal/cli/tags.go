package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/services"
)

func newTagCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tags",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := a.svc.Tags.List(cmd.Context())
				if err != nil {
					return err
				}
				return a.emit(list, tagRows(list))
			},
		},
		&cobra.Command{
			Use:   "add <label>",
			Short: "Create a tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := a.svc.Tags.Create(cmd.Context(), services.TagInput{Label: args[0]})
				if err != nil {
					return err
				}
				return a.emit(t, nil)
			},
		},
		&cobra.Command{
			Use:   "rename <id> <label>",
			Short: "Change the label of a tag",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := a.svc.Tags.Rename(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.emit(t, nil)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a tag and remove it from all bookmarks",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.svc.Tags.Delete(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}
