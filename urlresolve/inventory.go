// Package urlresolve rewrites links to archived documents on the legacy
// project site into their canonical archive URLs, matching files by checksum.
package urlresolve

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrInventoryUnavailable indicates the local checksum inventory could not
// be built.
var ErrInventoryUnavailable = errors.New("inventory unavailable")

// InventoryError reports the file or directory that stopped inventory
// construction.
type InventoryError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InventoryError) Error() string {
	return fmt.Sprintf("inventory unavailable: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InventoryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *InventoryError) Is(target error) bool {
	return target == ErrInventoryUnavailable
}

// Inventory maps archived file names to their hex MD5 checksums.
type Inventory map[string]string

// BuildInventory checksums the regular files directly inside each subdir of
// root. An empty subdir name means root itself. A missing root yields an
// empty inventory; any other failure aborts with an *InventoryError.
// Checksums are computed by up to workers goroutines (GOMAXPROCS when
// workers < 1). When two directories hold the same file name, the later
// subdir wins.
func BuildInventory(ctx context.Context, root string, subdirs []string, workers int) (Inventory, error) {
	inv := make(Inventory)

	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return inv, nil
		}
		return nil, &InventoryError{Path: root, Err: err}
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	for _, sub := range subdirs {
		dir := filepath.Join(root, sub)
		paths, err := listFiles(dir)
		if err != nil {
			return nil, &InventoryError{Path: dir, Err: err}
		}

		sums, err := checksumAll(ctx, paths, workers)
		if err != nil {
			return nil, err
		}
		for i, path := range paths {
			inv[filepath.Base(path)] = sums[i]
		}
	}

	return inv, nil
}

// listFiles returns the regular files directly inside dir.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// checksumAll returns the checksums of paths in the same order.
func checksumAll(ctx context.Context, paths []string, workers int) ([]string, error) {
	sums := make([]string, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &InventoryError{Path: path, Err: err}
			}
			sum, err := FileChecksum(path)
			if err != nil {
				return &InventoryError{Path: path, Err: err}
			}
			sums[i] = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}

// FileChecksum returns the hex MD5 of a file's contents.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
