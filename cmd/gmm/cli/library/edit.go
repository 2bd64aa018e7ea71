package library

import (
	"fmt"

	"github.com/spf13/cobra"

	modlib "github.com/Eidenz/GMM/pkg/library"
)

func NewEditCommand() *cobra.Command {
	var name, author, description, image string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <entity> <folder>",
		Short: "Edit the cached metadata of a mod",
		Long:  "Update user-entered metadata fields of a mod. Only flags that were actually passed are applied; everything else stays untouched.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			patch := modlib.EditMetadataPatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("author") {
				patch.Author = &author
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("image") {
				patch.ImageFile = &image
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}

			asset, err := lib.EditMetadata(ctx, modlib.AssetID(args[0], args[1]), patch)
			if err != nil {
				return err
			}

			fmt.Printf("Updated %s/%s (%s)\n", asset.EntitySlug, asset.FolderName, asset.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&author, "author", "", "author")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&image, "image", "", "preview image file relative to the mod folder")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tag list (replaces existing tags)")

	return cmd
}
