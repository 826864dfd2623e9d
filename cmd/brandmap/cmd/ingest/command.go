// Package ingest implements the import command, which loads raw brand
// documents from a JSON file into the store without validation.
package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/cmd/emoji"
)

// NewCommand creates the import command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "import [file]",
		GroupID: "core",
		Short:   "Import raw brand documents without validation",
		Long: `Import reads a JSON array of brand documents and inserts them as-is.

Identifiers given as 24-character hex strings or {"$oid": "..."} wrappers
are converted to ObjectIDs; anything else gets a new identifier. A
document that cannot be inserted (for example a duplicate identifier) is
reported and does not stop the others.`,
		Example: `  brandmap import                 # Import brands.json
  brandmap import data/raw.json   # Import a specific file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Defaults().ImportFile
			if len(args) == 1 {
				path = args[0]
			}
			ops, err := app.Operations()
			if err != nil {
				return err
			}
			return Run(cmd.Context(), ops, cmd.OutOrStdout(), path)
		},
	}
}

// Run imports path and prints a summary to w.
func Run(ctx context.Context, ops appcontext.Operations, w io.Writer, path string) error {
	report, err := ops.ImportRaw(ctx, path)
	if err != nil {
		return err
	}

	if report.Read == 0 {
		fmt.Fprintf(w, "%s No brand documents found in %s\n", emoji.Info, path)
		return nil
	}
	fmt.Fprintf(w, "%s Imported %d of %d documents from %s\n", emoji.Success, report.Inserted, report.Read, path)
	for _, f := range report.Failures {
		fmt.Fprintf(w, "  %s document %d (%s): %v\n", emoji.Error, f.Index, f.ID, f.Err)
	}
	return nil
}
