package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/store/memory"
	"github.com/agentstation/brandmap/pkg/errors"
	"github.com/agentstation/brandmap/pkg/logging"
)

// newTestApp creates an App backed by an in-memory store and filesystem.
func newTestApp(t *testing.T, opts ...Option) (*App, afero.Fs) {
	t.Helper()
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	fs := afero.NewMemMapFs()
	opts = append([]Option{
		WithStore(memory.New()),
		WithFs(fs),
		WithLogger(logging.NewNopLogger()),
	}, opts...)

	app, err := New("1.0.0", "abc123", "2026-10-19", "test", opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app, fs
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, _ := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2026-10-19" {
		t.Errorf("Date() = %s, want 2026-10-19", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
	if app.Defaults().ImportFile != "brands.json" {
		t.Errorf("Defaults().ImportFile = %s, want brands.json", app.Defaults().ImportFile)
	}
}

// TestApp_Operations_Singleton verifies that Operations() returns the same runner.
func TestApp_Operations_Singleton(t *testing.T) {
	app, _ := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]appcontext.Operations, goroutines)
	errs := make([]error, goroutines)

	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Operations()
		}(i)
	}
	wg.Wait()

	for i := range goroutines {
		if errs[i] != nil {
			t.Fatalf("Operations() failed in goroutine %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("Operations() returned a different runner in goroutine %d", i)
		}
	}
}

// TestApp_Store_OpensConfiguredBackend verifies the lazy open path.
func TestApp_Store_OpensConfiguredBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("BRANDMAP_STORE", "memory")

	app, err := New("dev", "", "", "", WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	st1, err := app.Store()
	if err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	st2, err := app.Store()
	if err != nil {
		t.Fatalf("Store() failed on second call: %v", err)
	}
	if st1 != st2 {
		t.Error("Store() returned different handles, expected singleton")
	}
	if _, ok := st1.(*memory.Store); !ok {
		t.Errorf("Store() = %T, want *memory.Store", st1)
	}

	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if _, err := app.Store(); !errors.Is(err, errors.ErrClosed) {
		t.Errorf("Store() after Shutdown error = %v, want ErrClosed", err)
	}
}

// TestApp_Store_UnknownBackend verifies configuration errors surface on first use.
func TestApp_Store_UnknownBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("BRANDMAP_STORE", "sqlite")

	app, err := New("dev", "", "", "", WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := app.Operations(); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Operations() error = %v, want ErrInvalidInput", err)
	}
}

// TestApp_Shutdown verifies shutdown is idempotent and writes metrics.
func TestApp_Shutdown(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "brandmap.prom")
	app, _ := newTestApp(t)
	app.Config().MetricsFile = metricsFile

	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown() failed: %v", err)
	}

	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "brandmap_imported_total") {
		t.Errorf("metrics file missing import counter:\n%s", data)
	}
}

// TestApp_Execute_ImportAndExport runs commands through the root command.
func TestApp_Execute_ImportAndExport(t *testing.T) {
	app, fs := newTestApp(t)
	raw := `[
  {"_id": "64b7f1a2c3d4e5f6a7b8c9d0", "brandName": "Acme", "yearFounded": 1999, "headquarters": "Porto", "numberOfLocations": 3},
  {"brand": {"name": "Globex"}, "yearCreated": "1989", "hqAddress": "Springfield"}
]`
	if err := afero.WriteFile(fs, "raw.json", []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) string {
		t.Helper()
		root := app.createRootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v failed: %v\n%s", args, err, out.String())
		}
		return out.String()
	}

	if out := run("import", "raw.json"); !strings.Contains(out, "Imported 2 of 2") {
		t.Errorf("import output = %q", out)
	}
	if out := run("normalize"); !strings.Contains(out, "Normalized 2 of 2") {
		t.Errorf("normalize output = %q", out)
	}
	if out := run("export", "--dir", "out"); !strings.Contains(out, "Exported 2 brands") {
		t.Errorf("export output = %q", out)
	}
	if ok, _ := afero.Exists(fs, filepath.Join("out", "exported-brands.json")); !ok {
		t.Error("export file not written")
	}
	if out := run("list", "-o", "json"); !strings.Contains(out, `"brandName": "Globex"`) {
		t.Errorf("list output = %q", out)
	}
}

// TestApp_Execute_Version verifies the version command output.
func TestApp_Execute_Version(t *testing.T) {
	app, _ := newTestApp(t)

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "brandmap 1.0.0") || !strings.Contains(out.String(), "abc123") {
		t.Errorf("version output = %q", out.String())
	}
}
