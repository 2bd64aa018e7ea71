package library

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewListCommand() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list [entity]",
		Short: "List entities or the mods of one entity",
		Long:  "List all known entities, or with an entity slug the mods cached for it. The --tag flag filters mods across all entities instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if tag != "" {
				assets, err := lib.AssetsByTag(ctx, tag)
				if err != nil {
					return err
				}
				for _, a := range assets {
					fmt.Printf("%s  %-10s %-30s %s\n", stateMark(a.IsEnabled), a.EntitySlug, a.FolderName, a.Name)
				}
				return nil
			}

			if len(args) == 0 {
				entities, err := lib.Entities(ctx)
				if err != nil {
					return err
				}
				for _, e := range entities {
					fmt.Printf("%-20s %-30s %s\n", e.Slug, e.DisplayName, e.Category)
				}
				return nil
			}

			assets, err := lib.Assets(ctx, args[0])
			if err != nil {
				return err
			}
			for _, a := range assets {
				fmt.Printf("%s  %-30s %s\n", stateMark(a.IsEnabled), a.FolderName, a.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "list mods carrying this tag across all entities")

	return cmd
}

func stateMark(enabled bool) string {
	if enabled {
		return "[on ]"
	}
	return "[off]"
}
