package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/services"
)

func newBookmarkCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarks",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List bookmarks, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := a.svc.Bookmarks.List(cmd.Context())
				if err != nil {
					return err
				}
				return a.emit(list, bookmarkRows(list))
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := a.svc.Bookmarks.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.emit(b, nil)
			},
		},
		newBookmarkAddCmd(a),
		newBookmarkUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.svc.Bookmarks.Delete(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "tags <id>",
			Short: "List the tags of a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tags, err := a.svc.Bookmarks.Tags(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.emit(tags, tagRows(tags))
			},
		},
	)
	return cmd
}

// resolveTags turns tag labels into ids, creating tags on first use.
func (a *App) resolveTags(cmd *cobra.Command, labels []string) ([]string, error) {
	ids := make([]string, 0, len(labels))
	for _, l := range labels {
		t, err := a.svc.Tags.Ensure(cmd.Context(), l)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func newBookmarkAddCmd(a *App) *cobra.Command {
	var (
		category string
		tags     []string
		name     string
		note     string
	)
	cmd := &cobra.Command{
		Use:   "add <naId>",
		Short: "Bookmark a catalog record",
		Example: `  archivekeeper bookmark add 73088101 --category <id> --tag wwii --tag pacific`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, err := a.svc.Search.Record(ctx, args[0])
			if err != nil {
				return err
			}
			webURL, err := a.svc.Settings.GetString(ctx, services.SettingCatalogWebURL, a.cfg.CatalogWebURL)
			if err != nil {
				return err
			}

			b := models.BookmarkFromRecord(*rec, category, webURL)
			if b.Tags, err = a.resolveTags(cmd, tags); err != nil {
				return err
			}
			b.CustomName = name
			if cmd.Flags().Changed("note") {
				b.Note = &note
			}

			out, err := a.svc.Bookmarks.Create(ctx, b)
			if err != nil {
				return err
			}
			return a.emit(out, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "Bookmarked %s as %s\n", out.RecordID, out.ID)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category id (required)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag label, repeatable")
	cmd.Flags().StringVar(&name, "name", "", "custom display name")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	_ = cmd.MarkFlagRequired("category")
	return catalogCmd(cmd)
}

func newBookmarkUpdateCmd(a *App) *cobra.Command {
	var (
		title, name, note, category string
		tags                        []string
		clearTags                   bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a bookmark; unset flags are left alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.BookmarkPatch
			f := cmd.Flags()
			if f.Changed("title") {
				p.Title = &title
			}
			if f.Changed("name") {
				p.CustomName = &name
			}
			if f.Changed("note") {
				p.Note = &note
			}
			if f.Changed("category") {
				p.CategoryID = &category
			}
			switch {
			case clearTags:
				empty := []string{}
				p.Tags = &empty
			case f.Changed("tag"):
				ids, err := a.resolveTags(cmd, tags)
				if err != nil {
					return err
				}
				p.Tags = &ids
			}
			if p.Empty() {
				return fmt.Errorf("nothing to update")
			}

			b, err := a.svc.Bookmarks.Update(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			return a.emit(b, nil)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&name, "name", "", "custom display name")
	cmd.Flags().StringVar(&note, "note", "", "note")
	cmd.Flags().StringVar(&category, "category", "", "move to category id")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "replace tags with these labels, repeatable")
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "remove all tags")
	return cmd
}
