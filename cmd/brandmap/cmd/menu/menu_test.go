package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/operations"
	brandmaperrors "github.com/agentstation/brandmap/pkg/errors"
	exportfmt "github.com/agentstation/brandmap/pkg/export"
	"github.com/agentstation/brandmap/pkg/logging"
)

func defaults() appcontext.Defaults {
	return (&appcontext.Mock{}).Defaults()
}

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{line: "0", want: Command{Choice: ChoiceExit, Args: []string{}}},
		{line: " 1 ", want: Command{Choice: ChoiceImport, Args: []string{}}},
		{line: "1 data/raw.json", want: Command{Choice: ChoiceImport, Args: []string{"data/raw.json"}}},
		{line: "2", want: Command{Choice: ChoiceNormalize, Args: []string{}}},
		{line: "3", want: Command{Choice: ChoiceSeed, Args: []string{}}},
		{line: "4", want: Command{Choice: ChoiceExport, Args: []string{}}},
		{line: "", wantErr: true},
		{line: "5", wantErr: true},
		{line: "import", wantErr: true},
		{line: "2 extra", wantErr: true},
		{line: "1 a.json b.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, brandmaperrors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatch(t *testing.T) {
	var calls []string
	ops := &appcontext.OperationsMock{
		ImportRawFunc: func(_ context.Context, path string) (operations.ImportReport, error) {
			calls = append(calls, "import "+path)
			return operations.ImportReport{Path: path}, nil
		},
		NormalizeFunc: func(context.Context) (operations.NormalizeReport, error) {
			calls = append(calls, "normalize")
			return operations.NormalizeReport{}, nil
		},
		SeedFunc: func(_ context.Context, opts operations.SeedOptions) (operations.SeedReport, error) {
			calls = append(calls, "seed "+opts.Format.String())
			assert.Equal(t, 10, opts.Count)
			return operations.SeedReport{}, nil
		},
		ExportFunc: func(_ context.Context, opts operations.ExportOptions) (operations.ExportReport, error) {
			calls = append(calls, "export "+opts.Format.String())
			assert.Equal(t, exportfmt.FormatJSON, opts.Format)
			return operations.ExportReport{}, nil
		},
	}
	d := NewDispatcher(ops, defaults(), &bytes.Buffer{})
	ctx := context.Background()

	for _, c := range []Command{
		{Choice: ChoiceImport},
		{Choice: ChoiceImport, Args: []string{"other.json"}},
		{Choice: ChoiceNormalize},
		{Choice: ChoiceSeed},
		{Choice: ChoiceExport},
	} {
		exit, err := d.Dispatch(ctx, c)
		require.NoError(t, err)
		assert.False(t, exit)
	}

	exit, err := d.Dispatch(ctx, Command{Choice: ChoiceExit})
	require.NoError(t, err)
	assert.True(t, exit)

	assert.Equal(t, []string{
		"import brands.json",
		"import other.json",
		"normalize",
		"seed csv",
		"export json",
	}, calls)

	_, err = d.Dispatch(ctx, Command{Choice: Choice(9)})
	assert.True(t, brandmaperrors.IsValidationError(err))
}

func TestLoop(t *testing.T) {
	var normalized int
	ops := &appcontext.OperationsMock{
		NormalizeFunc: func(context.Context) (operations.NormalizeReport, error) {
			normalized++
			if normalized == 1 {
				return operations.NormalizeReport{}, errors.New("store unavailable")
			}
			return operations.NormalizeReport{Total: 1, Normalized: 1}, nil
		},
	}
	logger := logging.NewTestLogger(t)

	in := strings.NewReader("9\n2\n2\n0\n2\n")
	var out bytes.Buffer
	d := NewDispatcher(ops, defaults(), &out)

	require.NoError(t, Loop(context.Background(), in, &out, d, logger.Logger))

	assert.Equal(t, 2, normalized, "input after exit must not run")
	assert.Contains(t, out.String(), "Invalid option")
	assert.Contains(t, out.String(), "Error: store unavailable")
	assert.Contains(t, out.String(), "Normalized 1 of 1 documents")
	assert.Equal(t, 4, strings.Count(out.String(), Prompt))
	logger.AssertContains(t, "Operation failed")
}

func TestLoop_EndOfInput(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(&appcontext.OperationsMock{}, defaults(), &out)

	err := Loop(context.Background(), strings.NewReader("2\n"), &out, d, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out.String(), Prompt))
}

func TestLoop_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	d := NewDispatcher(&appcontext.OperationsMock{}, defaults(), &out)

	require.NoError(t, Loop(ctx, strings.NewReader("2\n"), &out, d, logging.NewNopLogger()))
	assert.Empty(t, out.String())
}
