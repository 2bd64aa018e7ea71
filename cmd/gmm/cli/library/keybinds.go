package library

import (
	"fmt"

	"github.com/spf13/cobra"

	modlib "github.com/Eidenz/GMM/pkg/library"
)

func NewKeybindsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keybinds <entity> <folder>",
		Short: "Show the key bindings of a mod",
		Long:  "Parse the mod's config INI files and print every key-section binding they declare.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			records, warnings, err := lib.Keybinds(ctx, modlib.AssetID(args[0], args[1]))
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No key bindings found")
			}
			for _, r := range records {
				if r.Description != "" {
					fmt.Printf("%-25s %-20s %s\n", r.SectionTitle, r.KeyCombo, r.Description)
				} else {
					fmt.Printf("%-25s %s\n", r.SectionTitle, r.KeyCombo)
				}
			}
			for _, w := range warnings {
				fmt.Printf("  warning: %s: %v\n", w.Path, w.Err)
			}
			return nil
		},
	}

	return cmd
}
