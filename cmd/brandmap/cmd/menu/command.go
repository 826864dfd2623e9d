package menu

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/brandmap/internal/appcontext"
)

// NewCommand creates the menu command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "menu",
		GroupID: "core",
		Short:   "Run the interactive operator menu",
		Long: `Menu shows the numbered operator menu and runs the chosen operation.
Option 1 accepts an optional file name, as in "1 data/raw.json".
A failed operation is reported and the menu is shown again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd, app)
		},
	}
}

// Run starts the menu on cmd's input and output streams.
func Run(cmd *cobra.Command, app appcontext.Interface) error {
	ops, err := app.Operations()
	if err != nil {
		return err
	}
	d := NewDispatcher(ops, app.Defaults(), cmd.OutOrStdout())
	return Loop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), d, app.Logger())
}
