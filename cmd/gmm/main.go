package main

import (
	"fmt"
	"os"

	"github.com/Eidenz/GMM/cmd/gmm/cli"
	"github.com/Eidenz/GMM/cmd/gmm/cli/library"
	"github.com/Eidenz/GMM/cmd/gmm/cli/server"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(server.NewAgentCommand())
	root.AddCommand(server.NewConfigCommand())

	root.AddCommand(library.NewScanCommand())
	root.AddCommand(library.NewListCommand())
	root.AddCommand(library.NewToggleCommand())
	root.AddCommand(library.NewInstallCommand())
	root.AddCommand(library.NewKeybindsCommand())
	root.AddCommand(library.NewEditCommand())
	root.AddCommand(library.NewDeleteCommand())
	root.AddCommand(library.NewPresetCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
