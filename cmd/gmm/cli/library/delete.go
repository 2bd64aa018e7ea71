package library

import (
	"fmt"

	"github.com/spf13/cobra"

	modlib "github.com/Eidenz/GMM/pkg/library"
)

func NewDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <entity> <folder>",
		Short: "Delete a mod from disk and cache",
		Long:  "Remove a mod's folder from the library and its row from the metadata cache. This cannot be undone.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete %s/%s without --force", args[0], args[1])
			}

			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if err := lib.Delete(ctx, modlib.AssetID(args[0], args[1])); err != nil {
				return err
			}

			fmt.Printf("Deleted %s/%s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the deletion")

	return cmd
}
