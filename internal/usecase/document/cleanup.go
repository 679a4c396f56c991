package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/multierr"
)

// CleanupIfExists removes each path. Empty and missing paths are skipped, so
// calling it twice is harmless. Other failures are collected and returned
// together after every path was tried.
func CleanupIfExists(paths ...string) error {
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		if rmErr := os.Remove(p); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = multierr.Append(err, fmt.Errorf("remove %s: %w", p, rmErr))
		}
	}
	return err
}
