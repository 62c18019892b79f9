package repofakes

import (
	"sync"

	internalerrors "github.com/collegeops/collegeops-cli/internal/errors"
	"github.com/collegeops/collegeops-cli/session"
)

var _ session.Storage = (*FakeStorage)(nil)

// FakeStorage is an in-memory session.Storage for tests.
type FakeStorage struct {
	entries map[string]string
	lock    sync.RWMutex
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{entries: make(map[string]string)}
}

func (fs *FakeStorage) Get(key string) (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	value, ok := fs.entries[key]
	if !ok {
		return "", internalerrors.ErrEntryNotFound
	}
	return value, nil
}

func (fs *FakeStorage) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.entries[key] = value
	return nil
}

func (fs *FakeStorage) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	delete(fs.entries, key)
	return nil
}

// Len reports how many entries are currently stored.
func (fs *FakeStorage) Len() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return len(fs.entries)
}
