// Package export implements the export command, which writes all canonical
// stored brands to a new file.
package export

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

// NewCommand creates the export command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Export all brands to a file",
		Long: `Export writes every canonical stored brand to exported-brands.json
(or .yaml). An existing file is never overwritten: a numeric suffix is
added instead, as in exported-brands(1).json.`,
		Example: `  brandmap export
  brandmap export --format yaml --dir out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := exportfmt.ParseFormat(format)
			if err != nil {
				return err
			}
			if f.IsTabular() {
				return fmt.Errorf("exports are written as json or yaml, not %s", f)
			}
			ops, err := app.Operations()
			if err != nil {
				return err
			}
			return Run(cmd.Context(), ops, cmd.OutOrStdout(), operations.ExportOptions{Format: f, Dir: dir})
		},
	}

	defaults := app.Defaults()
	cmd.Flags().StringVar(&format, "format", defaults.ExportFormat, "file format: json, yaml")
	cmd.Flags().StringVar(&dir, "dir", defaults.ExportDir, "directory to write the file to")

	return cmd
}

// Run exports the store and prints a summary to w.
func Run(ctx context.Context, ops appcontext.Operations, w io.Writer, opts operations.ExportOptions) error {
	report, err := ops.Export(ctx, opts)
	if err != nil {
		return err
	}

	if report.Path == "" {
		fmt.Fprintf(w, "%s No brand documents found\n", emoji.Info)
		return nil
	}
	fmt.Fprintf(w, "%s Exported %d brands to %s\n", emoji.Success, report.Exported, report.Path)
	if report.Skipped > 0 {
		fmt.Fprintf(w, "  %s %d documents skipped, run normalize first\n", emoji.Warning, report.Skipped)
	}
	return nil
}
