// Package seed implements the seed command, which inserts synthetic valid
// brands and writes a table of all brands.
package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/cmd/emoji"
	"github.com/agentstation/brandmap/internal/operations"
	exportfmt "github.com/agentstation/brandmap/pkg/export"
)

// NewCommand creates the seed command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		count      int
		format     string
		dir        string
		randomSeed uint64
	)

	cmd := &cobra.Command{
		Use:     "seed",
		GroupID: "core",
		Short:   "Insert synthetic valid brands and export a table",
		Long: `Seed generates valid brands, inserts them, and writes a CSV or XLSX
table listing the brands already stored followed by the new ones. Each
new row carries a note describing the case it exercises.`,
		Example: `  brandmap seed                          # 10 brands, CSV in the export dir
  brandmap seed --count 25 --format xlsx
  brandmap seed --seed 42                # reproducible values`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := exportfmt.ParseFormat(format)
			if err != nil {
				return err
			}
			if !f.IsTabular() {
				return fmt.Errorf("seed tables are written as csv or xlsx, not %s", f)
			}
			ops, err := app.Operations()
			if err != nil {
				return err
			}
			return Run(cmd.Context(), ops, cmd.OutOrStdout(), operations.SeedOptions{
				Count:      count,
				Format:     f,
				Dir:        dir,
				RandomSeed: randomSeed,
			})
		},
	}

	defaults := app.Defaults()
	cmd.Flags().IntVarP(&count, "count", "n", defaults.SeedCount, "number of brands to generate")
	cmd.Flags().StringVar(&format, "format", defaults.SeedFormat, "table format: csv, xlsx")
	cmd.Flags().StringVar(&dir, "dir", defaults.ExportDir, "directory to write the table to")
	cmd.Flags().Uint64Var(&randomSeed, "seed", 0, "random seed for reproducible values (0 picks one)")

	return cmd
}

// Run seeds the store and prints a summary to w.
func Run(ctx context.Context, ops appcontext.Operations, w io.Writer, opts operations.SeedOptions) error {
	report, err := ops.Seed(ctx, opts)
	if report.Path != "" {
		fmt.Fprintf(w, "%s Inserted %d synthetic brands (%d existing)\n", emoji.Success, len(report.Seeded), report.Existing)
		fmt.Fprintf(w, "Table written to %s\n", report.Path)
	}
	return err
}
