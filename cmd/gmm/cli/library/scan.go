package library

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Rescan the mod library",
		Long:  "Walk the library root and reconcile the metadata cache against the folders actually on disk.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			result, err := lib.Rescan(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Scan complete: %d created, %d updated, %d removed\n",
				result.Created, result.Updated, result.Removed)
			for _, warning := range result.Warnings {
				fmt.Printf("  warning: %s\n", warning)
			}
			return nil
		},
	}

	return cmd
}
