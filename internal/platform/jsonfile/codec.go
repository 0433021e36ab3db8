package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/twitterclone/twitter-api/internal/store"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Decode reads the whole file at path and decodes it as a JSON array of T,
// preserving element order. A missing or corrupt file fails with store.ErrDecode.
func Decode[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", store.ErrDecode, path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", store.ErrDecode, path, err)
	}
	if records == nil {
		// A file holding "null" is treated as empty rather than corrupt.
		records = []T{}
	}
	return records, nil
}

// Encode replaces the file at path with records as a JSON array. The data is
// written to a temp file in the same directory and renamed over path, so
// readers see either the old or the new array, never a partial one.
func Encode[T any](path string, records []T) (err error) {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Ensure creates the parent directory of path and an empty array file when
// no file exists yet. An existing file is left untouched, even if corrupt.
func Ensure(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create data directory for %s: %w", path, err)
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return Encode(path, []json.RawMessage{})
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}
