// Package menu implements the interactive operator menu. Each choice runs
// the same code path as the matching subcommand.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/brandmap/cmd/brandmap/cmd/export"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/ingest"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/normalize"
	"github.com/agentstation/brandmap/cmd/brandmap/cmd/seed"
	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/cmd/emoji"
	"github.com/agentstation/brandmap/internal/operations"
	"github.com/agentstation/brandmap/pkg/errors"
	exportfmt "github.com/agentstation/brandmap/pkg/export"
)

// Choice is a menu selection.
type Choice int

// Menu choices.
const (
	ChoiceExit      Choice = 0
	ChoiceImport    Choice = 1
	ChoiceNormalize Choice = 2
	ChoiceSeed      Choice = 3
	ChoiceExport    Choice = 4
)

// Text is printed before every prompt.
const Text = `
1) Import raw data
2) Normalize stored data
3) Seed synthetic valid data + export
4) Export all to file
0) Exit
`

// Prompt is printed after the menu text.
const Prompt = "Select an option: "

// Command is a parsed menu line: a choice plus optional arguments, such as
// the import file name in "1 data/raw.json".
type Command struct {
	Choice Choice
	Args   []string
}

// Parse reads one line of menu input.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.NewValidationError("option", line, "enter a number from the menu")
	}

	var c Choice
	switch fields[0] {
	case "0":
		c = ChoiceExit
	case "1":
		c = ChoiceImport
	case "2":
		c = ChoiceNormalize
	case "3":
		c = ChoiceSeed
	case "4":
		c = ChoiceExport
	default:
		return Command{}, errors.NewValidationError("option", fields[0], "enter a number from the menu")
	}

	cmd := Command{Choice: c, Args: fields[1:]}
	if c != ChoiceImport && len(cmd.Args) > 0 {
		return Command{}, errors.NewValidationError("option", line, "only import takes an argument")
	}
	if len(cmd.Args) > 1 {
		return Command{}, errors.NewValidationError("option", line, "import takes a single file name")
	}
	return cmd, nil
}

// Dispatcher runs parsed menu commands.
type Dispatcher struct {
	ops      appcontext.Operations
	defaults appcontext.Defaults
	out      io.Writer
}

// NewDispatcher creates a Dispatcher writing summaries to out.
func NewDispatcher(ops appcontext.Operations, defaults appcontext.Defaults, out io.Writer) *Dispatcher {
	return &Dispatcher{ops: ops, defaults: defaults, out: out}
}

// Dispatch runs cmd. It reports exit for ChoiceExit.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (exit bool, err error) {
	switch cmd.Choice {
	case ChoiceExit:
		return true, nil
	case ChoiceImport:
		path := d.defaults.ImportFile
		if len(cmd.Args) == 1 {
			path = cmd.Args[0]
		}
		return false, ingest.Run(ctx, d.ops, d.out, path)
	case ChoiceNormalize:
		return false, normalize.Run(ctx, d.ops, d.out)
	case ChoiceSeed:
		format, err := exportfmt.ParseFormat(d.defaults.SeedFormat)
		if err != nil {
			return false, err
		}
		return false, seed.Run(ctx, d.ops, d.out, operations.SeedOptions{
			Count:  d.defaults.SeedCount,
			Format: format,
			Dir:    d.defaults.ExportDir,
		})
	case ChoiceExport:
		format, err := exportfmt.ParseFormat(d.defaults.ExportFormat)
		if err != nil {
			return false, err
		}
		return false, export.Run(ctx, d.ops, d.out, operations.ExportOptions{
			Format: format,
			Dir:    d.defaults.ExportDir,
		})
	default:
		return false, errors.NewValidationError("option", int(cmd.Choice), "unknown menu choice")
	}
}

// Loop shows the menu until the operator exits, input ends or ctx is
// canceled. Invalid input and failed operations are reported and the menu
// is shown again.
func Loop(ctx context.Context, in io.Reader, out io.Writer, d *Dispatcher, logger *zerolog.Logger) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(out, Text)
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd, err := Parse(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "%s Invalid option: %v\n", emoji.Error, err)
			continue
		}

		exit, err := d.Dispatch(ctx, cmd)
		if err != nil {
			logger.Error().Err(err).Int("option", int(cmd.Choice)).Msg("Operation failed")
			fmt.Fprintf(out, "%s Error: %v\n", emoji.Error, err)
			continue
		}
		if exit {
			return nil
		}
	}
}
