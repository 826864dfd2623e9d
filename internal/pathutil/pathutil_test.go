package pathutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	assert.Equal(t, "export.json", Name("export", "json", 0))
	assert.Equal(t, "export(1).json", Name("export", ".json", 1))
	assert.Equal(t, "seeded-brands(12).csv", Name("seeded-brands", "csv", 12))
}

func create(t *testing.T, fs afero.Fs, dir, base, ext string) string {
	t.Helper()
	f, path, err := Create(fs, dir, base, ext)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return path
}

func TestCreate(t *testing.T) {
	fs := afero.NewMemMapFs()

	f, path, err := Create(fs, "/new/dir", "seeded-brands", "csv")
	require.NoError(t, err)
	_, err = io.WriteString(f, "a,b\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, filepath.Join("/new/dir", "seeded-brands.csv"), path)

	assert.Equal(t, filepath.Join("/new/dir", "seeded-brands(1).csv"), create(t, fs, "/new/dir", "seeded-brands", "csv"))
	assert.Equal(t, filepath.Join("/new/dir", "seeded-brands(2).csv"), create(t, fs, "/new/dir", "seeded-brands", "csv"))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestCreateIgnoresOtherExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/export.yaml", nil, 0o644))

	assert.Equal(t, filepath.Join("/out", "export.json"), create(t, fs, "/out", "export", "json"))
}

func TestCreateNeverTruncatesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	existing := filepath.Join("/out", "exported-brands.json")
	require.NoError(t, afero.WriteFile(fs, existing, []byte(`[{"brandName":"Acme"}]`), 0o644))

	assert.Equal(t, filepath.Join("/out", "exported-brands(1).json"), create(t, fs, "/out", "exported-brands", "json"))

	data, err := afero.ReadFile(fs, existing)
	require.NoError(t, err)
	assert.Equal(t, `[{"brandName":"Acme"}]`, string(data))
}

// racingFs writes claimed's content the first time claimed is opened,
// standing in for another process that takes the name first.
type racingFs struct {
	afero.Fs
	claimed string
	done    bool
}

func (r *racingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if name == r.claimed && !r.done {
		r.done = true
		if err := afero.WriteFile(r.Fs, name, []byte("keep"), 0o644); err != nil {
			return nil, err
		}
	}
	return r.Fs.OpenFile(name, flag, perm)
}

func TestCreateSkipsNameClaimedConcurrently(t *testing.T) {
	claimed := filepath.Join("/out", "seeded-brands.csv")
	fs := &racingFs{Fs: afero.NewMemMapFs(), claimed: claimed}

	assert.Equal(t, filepath.Join("/out", "seeded-brands(1).csv"), create(t, fs, "/out", "seeded-brands", "csv"))

	data, err := afero.ReadFile(fs, claimed)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
