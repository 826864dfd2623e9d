// Package pathutil picks output file paths that never overwrite an
// existing file.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
)

// maxAttempts bounds the suffix search.
const maxAttempts = 10000

// Name returns base.ext, or base(n).ext for n > 0.
func Name(base, ext string, n int) string {
	ext = strings.TrimPrefix(ext, ".")
	if n == 0 {
		return base + "." + ext
	}
	return fmt.Sprintf("%s(%d).%s", base, n, ext)
}

// Create makes dir when needed and exclusively creates the first free
// name among base.ext, base(1).ext, base(2).ext, ... A name that already
// exists, including one claimed after an earlier attempt, moves on to the
// next suffix, so an existing file is never truncated. The caller closes
// the returned file.
func Create(fs afero.Fs, dir, base, ext string) (afero.File, string, error) {
	if dir == "" {
		dir = "."
	}
	if err := fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, "", errors.WrapIO("create", dir, err)
	}
	for n := 0; n < maxAttempts; n++ {
		path := filepath.Join(dir, Name(base, ext, n))
		f, err := fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FilePermissions)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", errors.WrapIO("create", path, err)
		}
	}
	return nil, "", errors.NewIOError("create", filepath.Join(dir, Name(base, ext, 0)),
		fmt.Errorf("no free name after %d attempts", maxAttempts))
}
