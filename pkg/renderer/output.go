package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// maxNumberedFiles bounds the search for a free numbered file name
const maxNumberedFiles = 100000

// CreateNumbered creates the first file <dir>/<prefix><N>.<ext> that does
// not exist yet, counting N from 0, so earlier renders are never overwritten.
func CreateNumbered(dir, prefix, ext string) (*os.File, string, error) {
	for n := 0; n < maxNumberedFiles; n++ {
		path := filepath.Join(dir, fmt.Sprintf("%s%d.%s", prefix, n, ext))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s*.%s in %s", prefix, ext, dir)
}
