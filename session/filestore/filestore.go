// Package filestore persists session entries as one file per key under
// a state directory, the terminal analogue of the browser's local
// storage: independent entries, plain strings, surviving restarts.
package filestore

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	internalerrors "github.com/collegeops/collegeops-cli/internal/errors"
	"github.com/collegeops/collegeops-cli/session"
)

var _ session.Storage = (*FileStore)(nil)

type FileStore struct {
	dir string
}

func New(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fs *FileStore) Get(key string) (string, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return "", internalerrors.ErrEntryNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[FileStore.Get] read entry")
	}
	return string(data), nil
}

func (fs *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(fs.dir, 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Set] create state dir")
	}
	if err := os.WriteFile(fs.path(key), []byte(value), 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Set] write entry")
	}
	return nil
}

func (fs *FileStore) Delete(key string) error {
	err := os.Remove(fs.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Delete] remove entry")
	}
	return nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key)
}
