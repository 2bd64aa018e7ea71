package library

import (
	"fmt"

	"github.com/spf13/cobra"

	modlib "github.com/Eidenz/GMM/pkg/library"
)

func NewToggleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <entity> <folder>",
		Short: "Enable or disable a mod",
		Long:  "Flip a mod between enabled and disabled by renaming its folder with the disabled marker.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			enabled, err := lib.Toggle(ctx, modlib.AssetID(args[0], args[1]))
			if err != nil {
				return err
			}

			if enabled {
				fmt.Printf("Enabled %s/%s\n", args[0], args[1])
			} else {
				fmt.Printf("Disabled %s/%s\n", args[0], args[1])
			}
			return nil
		},
	}

	return cmd
}
