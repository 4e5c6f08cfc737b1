package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/safeopen"
)

// openScript opens the replay file without following a symlink
// out of its directory.
func openScript(path string) (io.ReadCloser, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve script %s: %w", path, err)
	}
	f, err := safeopen.OpenBeneath(filepath.Dir(abs), filepath.Base(abs))
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", path, err)
	}
	return f, nil
}
