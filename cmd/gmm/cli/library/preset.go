package library

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eidenz/GMM/pkg/db/models"
	modlib "github.com/Eidenz/GMM/pkg/library"
)

func NewPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage enable-state presets",
		Long:  "Snapshot which mods are enabled into named presets and restore them later.",
	}

	cmd.AddCommand(newPresetCreateCommand())
	cmd.AddCommand(newPresetListCommand())
	cmd.AddCommand(newPresetApplyCommand())
	cmd.AddCommand(newPresetDeleteCommand())

	return cmd
}

func newPresetCreateCommand() *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Snapshot the current enable states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			preset, err := lib.CreatePreset(ctx, args[0], entity)
			if err != nil {
				return err
			}

			fmt.Printf("Created preset %q with %d mods\n", preset.Name, len(preset.Members))
			return nil
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "limit the snapshot to one entity (default: whole library)")

	return cmd
}

func newPresetListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			presets, err := lib.Presets(ctx)
			if err != nil {
				return err
			}

			for _, p := range presets {
				scope := p.EntitySlug
				if scope == "" {
					scope = "(all entities)"
				}
				fmt.Printf("%-4d %-25s %-20s %d mods\n", p.ID, p.Name, scope, len(p.Members))
			}
			return nil
		},
	}

	return cmd
}

func newPresetApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <name>",
		Short: "Restore the enable states of a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			preset, err := findPreset(ctx, lib, args[0])
			if err != nil {
				return err
			}

			results, err := lib.ApplyPreset(ctx, preset.ID)
			if err != nil {
				return err
			}

			var changed, failed int
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Printf("  failed %s: %v\n", r.AssetID, r.Err)
					continue
				}
				if r.Changed {
					changed++
				}
			}
			fmt.Printf("Applied preset %q: %d toggled, %d already in place, %d failed\n",
				preset.Name, changed, len(results)-changed-failed, failed)
			return nil
		},
	}

	return cmd
}

func newPresetDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, closer, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closer()

			preset, err := findPreset(ctx, lib, args[0])
			if err != nil {
				return err
			}

			if err := lib.DeletePreset(ctx, preset.ID); err != nil {
				return err
			}

			fmt.Printf("Deleted preset %q\n", preset.Name)
			return nil
		},
	}

	return cmd
}

func findPreset(ctx context.Context, lib *modlib.Library, name string) (*models.Preset, error) {
	presets, err := lib.Presets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range presets {
		if presets[i].Name == name {
			return &presets[i], nil
		}
	}
	return nil, fmt.Errorf("preset %q not found", name)
}
