package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/brandmap/cmd/brandmap/cmd/export"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/ingest"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/list"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/menu"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/normalize"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/seed"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(ingest.NewCommand(a))
	rootCmd.AddCommand(normalize.NewCommand(a))
	rootCmd.AddCommand(seed.NewCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(menu.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "brandmap %s\n", a.version)
			fmt.Fprintf(w, "  commit:   %s\n", a.commit)
			fmt.Fprintf(w, "  built:    %s\n", a.date)
			fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
			fmt.Fprintf(w, "  go:       %s\n", runtime.Version())
			fmt.Fprintf(w, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
