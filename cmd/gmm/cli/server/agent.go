package server

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eidenz/GMM/internal/agent"
	config "github.com/Eidenz/GMM/internal/config/server"
)

func NewAgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start the GMM library agent",
		Long:  "Start the GMM library agent: keeps the metadata cache reconciled against the mod folder tree on a fixed interval until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			agent := agent.NewAgent(cfg)
			if err := agent.Serve(context.Background()); err != nil {
				return err
			}

			return nil
		},
	}

	return cmd
}
