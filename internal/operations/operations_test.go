package operations

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/internal/store/memory"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
	"github.com/agentstation/brandmap/pkg/export"
	"github.com/agentstation/brandmap/pkg/logging"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

const rawFixture = `[
  {"_id": {"$oid": "507f1f77bcf86cd799439011"}, "brandName": "Acme", "yearFounded": 1920, "headquarters": "Boston", "numberOfLocations": 12, "legacy": true},
  {"_id": "507f1f77bcf86cd799439012", "brand": {"name": "Nested Co"}, "yearCreated": "1850abc", "hqAddress": "Lyon", "numberOfLocations": "0"},
  {"_id": "not-an-id", "yearsFounded": 1599, "numberOfLocations": -5},
  {}
]`

type fakeSource struct{ n int }

func (f *fakeSource) Company() string {
	f.n++
	return "Seeded " + strings.Repeat("X", f.n)
}
func (f *fakeSource) City() string              { return "Porto" }
func (f *fakeSource) Country() string           { return "Portugal" }
func (f *fakeSource) Noun() string              { return "gear" }
func (f *fakeSource) IntRange(min, max int) int { return min }

type fixture struct {
	fs     afero.Fs
	store  *memory.Store
	logs   *logging.TestLogger
	runner *Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/brands.json", []byte(rawFixture), 0o644))

	st := memory.New(store.WithClock(clock))
	logs := logging.NewTestLogger(t)
	return &fixture{
		fs:    fs,
		store: st,
		logs:  logs,
		runner: New(st,
			WithFs(fs),
			WithLogger(logs.Logger),
			WithClock(clock),
			WithSeedSource(&fakeSource{}),
		),
	}
}

func TestImportRaw(t *testing.T) {
	fx := newFixture(t)

	report, err := fx.runner.ImportRaw(context.Background(), "/in/brands.json")
	require.NoError(t, err)
	assert.Equal(t, 4, report.Read)
	assert.Equal(t, 4, report.Inserted)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 4, fx.store.Len())
	assert.Equal(t, 4.0, testutil.ToFloat64(fx.runner.Metrics().Imported))

	docs, err := fx.store.FindAll(context.Background())
	require.NoError(t, err)
	want, _ := bson.ObjectIDFromHex("507f1f77bcf86cd799439011")
	assert.Equal(t, want, docs[0][constants.FieldID])
	assert.Equal(t, true, docs[0]["legacy"], "unknown keys are stored verbatim")
}

func TestImportRawPartialFailure(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.runner.ImportRaw(ctx, "/in/brands.json")
	require.NoError(t, err)

	// Same file again: the two documents with fixed identifiers collide.
	report, err := fx.runner.ImportRaw(ctx, "/in/brands.json")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	require.Len(t, report.Failures, 2)
	assert.True(t, errors.IsAlreadyExists(report.Failures[0].Err))
	assert.Equal(t, 6, fx.store.Len())
	fx.logs.AssertContains(t, "Document rejected")
}

func TestImportRawMissingFile(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.runner.ImportRaw(context.Background(), "/in/missing.json")
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Zero(t, fx.store.Len())
}

func TestImportRawEmptyArray(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, afero.WriteFile(fx.fs, "/in/empty.json", []byte("[]"), 0o644))

	report, err := fx.runner.ImportRaw(context.Background(), "/in/empty.json")
	require.NoError(t, err)
	assert.Zero(t, report.Inserted)
	fx.logs.AssertContains(t, "No brand documents found")
}

func TestNormalize(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.runner.ImportRaw(ctx, "/in/brands.json")
	require.NoError(t, err)

	report, err := fx.runner.Normalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 4, report.Normalized)
	assert.Zero(t, report.Failed())

	docs, err := fx.store.FindAll(ctx)
	require.NoError(t, err)

	byName := map[string]brands.Brand{}
	for _, doc := range docs {
		b, err := brands.FromDocument(doc)
		require.NoError(t, err, "every stored document is canonical after normalize")
		require.NoError(t, b.Validate(fixedNow))
		byName[b.BrandName] = b
	}

	acme := byName["Acme"]
	assert.Equal(t, 1920, acme.YearFounded)
	assert.Equal(t, "Boston", acme.Headquarters)
	assert.Equal(t, 12, acme.NumberOfLocations)

	nested := byName["Nested Co"]
	assert.Equal(t, 1850, nested.YearFounded)
	assert.Equal(t, "Lyon", nested.Headquarters)
	assert.Equal(t, 1, nested.NumberOfLocations)

	unknown := byName[constants.DefaultBrandName]
	assert.Equal(t, constants.DefaultYearFounded, unknown.YearFounded)
	assert.Equal(t, constants.DefaultHeadquarters, unknown.Headquarters)

	assert.Equal(t, 2, report.Defaulted[brands.FieldBrandName])
	assert.Equal(t, 3, report.Defaulted[brands.FieldNumberOfLocations])
	assert.Equal(t, 2.0, testutil.ToFloat64(fx.runner.Metrics().Defaulted.WithLabelValues("brandName")))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.runner.ImportRaw(ctx, "/in/brands.json")
	require.NoError(t, err)
	_, err = fx.runner.Normalize(ctx)
	require.NoError(t, err)
	first, err := fx.store.FindAll(ctx)
	require.NoError(t, err)

	report, err := fx.runner.Normalize(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Defaulted[brands.FieldYearFounded])
	second, err := fx.store.FindAll(ctx)
	require.NoError(t, err)

	for i := range first {
		a, err := brands.FromDocument(first[i])
		require.NoError(t, err)
		b, err := brands.FromDocument(second[i])
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

// failingStore rejects replaces of one identifier.
type failingStore struct {
	store.Store
	reject bson.ObjectID
}

func (f *failingStore) ReplaceValidated(ctx context.Context, b brands.Brand) error {
	if b.ID == f.reject {
		return errors.New("write conflict")
	}
	return f.Store.ReplaceValidated(ctx, b)
}

func TestNormalizeContinuesAfterReplaceFailure(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.runner.ImportRaw(ctx, "/in/brands.json")
	require.NoError(t, err)

	reject, _ := bson.ObjectIDFromHex("507f1f77bcf86cd799439011")
	runner := New(&failingStore{Store: fx.store, reject: reject},
		WithFs(fx.fs), WithLogger(fx.logs.Logger), WithClock(clock))

	report, err := runner.Normalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Normalized)
	require.Equal(t, 1, report.Failed())
	assert.Equal(t, reject.Hex(), report.Failures[0].ID)
	fx.logs.AssertContains(t, reject.Hex())
	fx.logs.AssertContains(t, "Failed to update document")
}

func TestNormalizeEmptyStore(t *testing.T) {
	fx := newFixture(t)

	report, err := fx.runner.Normalize(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	fx.logs.AssertContains(t, "No brand documents found")
}

func TestExport(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.runner.ImportRaw(ctx, "/in/brands.json")
	require.NoError(t, err)

	// Raw documents are not canonical yet, so none are exported.
	report, err := fx.runner.Export(ctx, ExportOptions{Format: export.FormatJSON, Dir: "/out"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "exported-brands.json"), report.Path)
	assert.Zero(t, report.Exported)
	assert.Equal(t, 4, report.Skipped)

	_, err = fx.runner.Normalize(ctx)
	require.NoError(t, err)

	report, err = fx.runner.Export(ctx, ExportOptions{Format: export.FormatJSON, Dir: "/out"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "exported-brands(1).json"), report.Path)
	assert.Equal(t, 4, report.Exported)

	data, err := afero.ReadFile(fx.fs, report.Path)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 4)
	assert.Equal(t, "507f1f77bcf86cd799439011", records[0]["_id"])
}

func TestExportEmptyStoreWritesNothing(t *testing.T) {
	fx := newFixture(t)

	report, err := fx.runner.Export(context.Background(), ExportOptions{Dir: "/out"})
	require.NoError(t, err)
	assert.Empty(t, report.Path)

	exists, err := afero.DirExists(fx.fs, "/out")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSeed(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.runner.ImportRaw(ctx, "/in/brands.json")
	require.NoError(t, err)
	_, err = fx.runner.Normalize(ctx)
	require.NoError(t, err)

	report, err := fx.runner.Seed(ctx, SeedOptions{Count: 10, Format: export.FormatCSV, Dir: "/out"})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Existing)
	assert.Len(t, report.Seeded, 10)
	assert.Equal(t, filepath.Join("/out", "seeded-brands.csv"), report.Path)
	assert.Equal(t, 14, fx.store.Len())

	data, err := afero.ReadFile(fx.fs, report.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1+4+10)
	assert.True(t, strings.HasSuffix(lines[1], constants.ExistingRecordNote))
	assert.True(t, strings.HasSuffix(lines[5], "Standard global corporation"))

	for _, b := range report.Seeded {
		assert.False(t, b.ID.IsZero())
		assert.True(t, fixedNow.Equal(b.CreatedAt))
	}
}

func TestSeedDefaultsAndXLSX(t *testing.T) {
	fx := newFixture(t)

	report, err := fx.runner.Seed(context.Background(), SeedOptions{Format: export.FormatXLSX, Dir: "/out"})
	require.NoError(t, err)
	assert.Len(t, report.Seeded, constants.DefaultSeedCount)
	assert.Equal(t, filepath.Join("/out", "seeded-brands.xlsx"), report.Path)
}

func TestSeedRandomSeedIsReproducible(t *testing.T) {
	names := func() []string {
		fx := newFixture(t)
		report, err := fx.runner.Seed(context.Background(), SeedOptions{Count: 3, Dir: "/out", RandomSeed: 7})
		require.NoError(t, err)
		out := make([]string, len(report.Seeded))
		for i, b := range report.Seeded {
			out[i] = b.BrandName
		}
		return out
	}
	assert.Equal(t, names(), names())
}
