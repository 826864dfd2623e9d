// Package normalize implements the normalize command, which rewrites every
// stored document in canonical form.
package normalize

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/cmd/emoji"
	"github.com/agentstation/brandmap/pkg/brands"
)

// NewCommand creates the normalize command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "normalize",
		GroupID: "core",
		Short:   "Normalize stored brand documents in place",
		Long: `Normalize resolves every stored document to the canonical brand schema
and replaces it. Legacy field names are used when the canonical one is
missing or invalid, and fields with no usable value fall back to defaults:

  brandName          brandName, brand.name                    "Unknown Brand"
  yearFounded        yearCreated, yearsFounded, yearFounded   1600
  headquarters       headquarters, hqAddress                  "Unknown HQ Address"
  numberOfLocations  numberOfLocations                        1

A record that fails to save is reported and the run continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := app.Operations()
			if err != nil {
				return err
			}
			return Run(cmd.Context(), ops, cmd.OutOrStdout())
		},
	}
}

// Run normalizes the store and prints a summary to w.
func Run(ctx context.Context, ops appcontext.Operations, w io.Writer) error {
	report, err := ops.Normalize(ctx)
	if err != nil {
		return err
	}

	if report.Total == 0 {
		fmt.Fprintf(w, "%s No brand documents found\n", emoji.Info)
		return nil
	}
	fmt.Fprintf(w, "%s Normalized %d of %d documents\n", emoji.Success, report.Normalized, report.Total)
	for _, f := range brands.CanonicalFields {
		if n := report.Defaulted[f]; n > 0 {
			fmt.Fprintf(w, "  %s defaulted in %d documents\n", f, n)
		}
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "  %s failed %s: %v\n", emoji.Error, f.ID, f.Err)
	}
	return nil
}
