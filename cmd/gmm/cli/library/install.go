package library

import (
	"fmt"

	"github.com/spf13/cobra"

	modlib "github.com/Eidenz/GMM/pkg/library"
)

func NewInstallCommand() *cobra.Command {
	var folderName string

	cmd := &cobra.Command{
		Use:   "install <entity> <archive>",
		Short: "Install a mod archive",
		Long:  "Extract a zip, 7z or rar archive into the library under the given entity. The archive is staged and validated before anything becomes visible.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			asset, err := lib.Install(ctx, modlib.InstallOptions{
				EntitySlug:  args[0],
				FolderName:  folderName,
				ArchivePath: args[1],
			})
			if err != nil {
				return err
			}

			fmt.Printf("Installed %s/%s (%s)\n", asset.EntitySlug, asset.FolderName, asset.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&folderName, "name", "", "folder name to install under (default derived from the archive)")

	return cmd
}
