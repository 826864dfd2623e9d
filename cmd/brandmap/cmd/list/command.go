// Package list implements the list command for stored canonical brands.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/cmd/globals"
	"github.com/agentstation/brandmap/internal/cmd/output"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List stored brands",
		Aliases: []string{"ls"},
		Example: `  brandmap list                   # Table of canonical brands
  brandmap list --search porto    # Filter by name or headquarters
  brandmap list -o yaml           # Structured output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := app.Logger()
			flags := globals.ParseResources(cmd)

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			if format == "" {
				format = output.DetectFormat("")
			}

			ops, err := app.Operations()
			if err != nil {
				return err
			}
			bs, skipped, err := ops.List(cmd.Context())
			if err != nil {
				return err
			}
			if skipped > 0 {
				logger.Warn().Int("count", skipped).Msg("Documents not in canonical shape were left out, run normalize first")
			}

			filtered := flags.Apply(bs)
			logger.Debug().Int("count", len(filtered)).Msg("Listing brands")
			return output.Brands(cmd.OutOrStdout(), format, filtered)
		},
	}

	globals.AddResourceFlags(cmd)
	return cmd
}
